package update

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse indicates the release feed answered but the body
	// did not parse as release metadata.
	ErrMalformedResponse = errors.New("malformed release response")

	// ErrUnsupportedPlatform indicates no binary is published for this
	// OS/architecture combination.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrAssetNotFound indicates the release is missing the binary expected
	// for this platform. Distinct from ErrUnsupportedPlatform: the host is
	// supported, the release is incomplete.
	ErrAssetNotFound = errors.New("asset not found in release")

	// ErrManifestNotFound indicates the release carries no checksum
	// manifest. The updater fails closed rather than installing unverified.
	ErrManifestNotFound = errors.New("checksum manifest not found in release")

	// ErrManifestEmpty indicates the manifest parsed to zero entries.
	ErrManifestEmpty = errors.New("checksum manifest has no entries")

	// ErrChecksumMismatch indicates the downloaded file's digest does not
	// match the manifest entry.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrValidationFailed indicates the candidate binary did not run
	// correctly when probed.
	ErrValidationFailed = errors.New("binary validation failed")

	// ErrUpdateInProgress indicates another invocation holds the install
	// lock.
	ErrUpdateInProgress = errors.New("another update is already in progress")
)

// HTTPStatusError reports a non-success HTTP status from the feed or an
// asset download. The body is never parsed in this case.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// ChecksumError carries the expected and actual digests of a failed
// verification. It wraps ErrChecksumMismatch for errors.Is classification.
type ChecksumError struct {
	File     string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.File, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }

// InstallError reports a failed backup, rename, or copy during the install
// sequence. The previous binary is still in place when this is returned.
type InstallError struct {
	Op  string
	Err error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install failed during %s: %v", e.Op, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// RollbackError is the most severe failure: restoring the backup after a
// failed install itself failed, so the live executable may be broken. The
// backup path is included so the user can recover manually.
type RollbackError struct {
	BackupPath string
	Err        error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed: %v (restore manually from %s)", e.Err, e.BackupPath)
}

func (e *RollbackError) Unwrap() error { return e.Err }
