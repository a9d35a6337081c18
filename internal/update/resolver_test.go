package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolverLatestRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/jfplabs/jfp/releases/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "jfp/1.0.0" {
			t.Errorf("User-Agent = %q, want jfp/1.0.0", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept") != "application/vnd.github+json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tag_name": "v1.1.0",
			"html_url": "https://example.com/releases/v1.1.0",
			"assets": [
				{"name": "jfp-linux-x64", "browser_download_url": "https://example.com/jfp-linux-x64", "size": 123},
				{"name": "checksums.txt", "browser_download_url": "https://example.com/checksums.txt", "size": 99}
			]
		}`))
	}))
	defer server.Close()

	r := NewResolver("jfplabs", "jfp", "1.0.0").WithBaseURL(server.URL)

	release, err := r.LatestRelease(context.Background())
	if err != nil {
		t.Fatalf("LatestRelease() error = %v", err)
	}

	if release.TagName != "v1.1.0" {
		t.Errorf("TagName = %q, want v1.1.0", release.TagName)
	}
	if len(release.Assets) != 2 {
		t.Fatalf("len(Assets) = %d, want 2", len(release.Assets))
	}
	if release.Assets[0].Size != 123 {
		t.Errorf("Size = %d, want 123", release.Assets[0].Size)
	}
}

func TestResolverLatestRelease_Token(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			t.Errorf("Authorization = %q, want Bearer tok123", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"tag_name": "v1.0.0", "assets": []}`))
	}))
	defer server.Close()

	r := NewResolver("jfplabs", "jfp", "1.0.0").WithBaseURL(server.URL).WithToken("tok123")
	if _, err := r.LatestRelease(context.Background()); err != nil {
		t.Fatalf("LatestRelease() error = %v", err)
	}
}

func TestResolverLatestRelease_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		// Error bodies must never be parsed as metadata.
		_, _ = w.Write([]byte(`{"tag_name": "v9.9.9"}`))
	}))
	defer server.Close()

	r := NewResolver("jfplabs", "jfp", "1.0.0").WithBaseURL(server.URL)

	_, err := r.LatestRelease(context.Background())
	var serr *HTTPStatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *HTTPStatusError", err)
	}
	if serr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", serr.StatusCode)
	}
}

func TestResolverLatestRelease_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>rate limited</html>"},
		{name: "missing tag", body: `{"assets": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			r := NewResolver("jfplabs", "jfp", "1.0.0").WithBaseURL(server.URL)
			if _, err := r.LatestRelease(context.Background()); !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("LatestRelease() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestResolverLatestRelease_Unreachable(t *testing.T) {
	server := httptest.NewServer(nil)
	server.Close()

	r := NewResolver("jfplabs", "jfp", "1.0.0").WithBaseURL(server.URL)
	if _, err := r.LatestRelease(context.Background()); err == nil {
		t.Error("expected error for unreachable feed")
	}
}

func TestReleaseFindAsset(t *testing.T) {
	release := &Release{
		TagName: "v1.1.0",
		Assets: []Asset{
			{Name: "jfp-linux-x64", DownloadURL: "https://example.com/a"},
			{Name: "checksums.txt", DownloadURL: "https://example.com/b"},
		},
	}

	asset, err := release.FindAsset("checksums.txt")
	if err != nil {
		t.Fatalf("FindAsset() error = %v", err)
	}
	if asset.DownloadURL != "https://example.com/b" {
		t.Errorf("DownloadURL = %q", asset.DownloadURL)
	}

	if _, err := release.FindAsset("jfp-macos-arm64"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("FindAsset() error = %v, want ErrAssetNotFound", err)
	}
}
