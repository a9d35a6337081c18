package update

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileDigest computes the lowercase hex SHA-256 digest of the file at path,
// streaming it through the hash rather than loading it into memory.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyDigest compares the file's SHA-256 digest against expected. The
// comparison is case-insensitive; the manifest is canonically lowercase. A
// mismatch returns a *ChecksumError wrapping ErrChecksumMismatch and is
// terminal for the whole update.
func VerifyDigest(path, expected string) error {
	actual, err := FileDigest(path)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actual, expected) {
		return &ChecksumError{
			File:     path,
			Expected: strings.ToLower(expected),
			Actual:   actual,
		}
	}

	return nil
}
