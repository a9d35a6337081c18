package update

import (
	"fmt"
	"runtime"
)

// Platform describes the operating system and CPU architecture an update
// runs on.
type Platform struct {
	OS   string // GOOS value (darwin, linux, windows)
	Arch string // GOARCH value (amd64, arm64)
}

// Release assets use their own naming for OS and architecture, distinct from
// Go's. Unsupported combinations are rejected before any network call for
// the binary itself.
var (
	assetOS = map[string]string{
		"darwin":  "macos",
		"linux":   "linux",
		"windows": "windows",
	}
	assetArch = map[string]string{
		"amd64": "x64",
		"arm64": "arm64",
	}
)

// Detect returns the platform of the running process.
func Detect() Platform {
	return Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// AssetName returns the published binary filename for this platform,
// e.g. "jfp-macos-arm64" or "jfp-windows-x64.exe". Returns
// ErrUnsupportedPlatform for any combination without a published binary.
func (p Platform) AssetName() (string, error) {
	osName, ok := assetOS[p.OS]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, p.OS, p.Arch)
	}

	archName, ok := assetArch[p.Arch]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, p.OS, p.Arch)
	}

	name := fmt.Sprintf("%s-%s-%s", toolName, osName, archName)
	if p.OS == "windows" {
		name += ".exe"
	}
	return name, nil
}

// IsSupported reports whether a binary is published for this platform.
func (p Platform) IsSupported() bool {
	_, err := p.AssetName()
	return err == nil
}
