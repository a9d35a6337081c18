package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloaderDownload_Success(t *testing.T) {
	testContent := []byte("test binary content")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("download request missing User-Agent")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(testContent)
	}))
	defer server.Close()

	dst := filepath.Join(t.TempDir(), "test-binary")

	d := NewDownloader()
	if err := d.Download(context.Background(), server.URL, dst); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if string(content) != string(testContent) {
		t.Errorf("content mismatch: got %q, want %q", content, testContent)
	}
}

func TestDownloaderDownload_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dst := filepath.Join(t.TempDir(), "test-binary")

	d := NewDownloader()
	err := d.Download(context.Background(), server.URL, dst)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var serr *HTTPStatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *HTTPStatusError", err)
	}
	if serr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", serr.StatusCode)
	}

	// No bytes may be written on a non-success status.
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("file should not exist after failed download")
	}
}

func TestDownloaderDownload_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDownloader()
	if err := d.Download(ctx, server.URL, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("expected error for cancelled context")
	}
}
