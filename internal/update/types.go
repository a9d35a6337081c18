// Package update implements the jfp self-update subsystem: release
// resolution, checksum-verified download, binary validation, and atomic
// in-place replacement of the running executable with rollback.
package update

// toolName is the identifying token the binary validator looks for in the
// candidate's --version output.
const toolName = "jfp"

// manifestAssetName is the fixed filename of the checksum manifest attached
// to every release.
const manifestAssetName = "checksums.txt"

// Release describes the latest published release as reported by the feed.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Status is the terminal outcome of an update run.
type Status string

const (
	StatusUpToDate        Status = "up_to_date"
	StatusUpdateAvailable Status = "update_available"
	StatusUpdated         Status = "updated"
	StatusError           Status = "error"
)

// Result is the single output value of an update run. It is also the
// process-boundary contract: `jfp update --json` emits exactly this object.
type Result struct {
	CurrentVersion  string `json:"currentVersion"`
	LatestVersion   string `json:"latestVersion"`
	UpdateAvailable bool   `json:"updateAvailable"`
	Status          Status `json:"status"`
	Message         string `json:"message"`
	DownloadURL     string `json:"downloadUrl,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Options control a single orchestrator run.
type Options struct {
	// CheckOnly resolves and reports availability without downloading.
	CheckOnly bool
	// Force proceeds with the install even when already up to date.
	Force bool
}
