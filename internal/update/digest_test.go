package update

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileDigest(t *testing.T) {
	content := []byte("jfp test content")
	path := writeTestFile(t, content)

	sum := sha256.Sum256(content)
	want := hex.EncodeToString(sum[:])

	got, err := FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest() error = %v", err)
	}
	if got != want {
		t.Errorf("FileDigest() = %s, want %s", got, want)
	}
}

func TestFileDigest_MissingFile(t *testing.T) {
	if _, err := FileDigest(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVerifyDigest(t *testing.T) {
	content := []byte("verified bytes")
	path := writeTestFile(t, content)
	sum := sha256.Sum256(content)
	expected := hex.EncodeToString(sum[:])

	if err := VerifyDigest(path, expected); err != nil {
		t.Errorf("VerifyDigest() error = %v", err)
	}

	// Hex comparison is case-insensitive even though manifests are lowercase.
	if err := VerifyDigest(path, strings.ToUpper(expected)); err != nil {
		t.Errorf("VerifyDigest() with uppercase hex error = %v", err)
	}
}

func TestVerifyDigest_Mismatch(t *testing.T) {
	path := writeTestFile(t, []byte("actual bytes"))

	err := VerifyDigest(path, digestA)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("VerifyDigest() error = %v, want ErrChecksumMismatch", err)
	}

	var cerr *ChecksumError
	if !errors.As(err, &cerr) {
		t.Fatal("error should be a *ChecksumError")
	}
	if cerr.Expected != digestA {
		t.Errorf("Expected = %s, want %s", cerr.Expected, digestA)
	}
	if cerr.Actual == "" || cerr.Actual == digestA {
		t.Errorf("Actual digest not captured: %q", cerr.Actual)
	}
}
