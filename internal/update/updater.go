package update

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Updater sequences the full self-update flow: version comparison, asset
// selection, checksum-verified download, candidate validation, and atomic
// install.
type Updater struct {
	currentVersion string
	resolver       *Resolver
	downloader     *Downloader
	validator      *Validator
	platform       Platform
	execPath       string // empty means resolve the running executable
}

// Option configures an Updater.
type Option func(*Updater)

// WithResolver overrides the release feed resolver (used by tests).
func WithResolver(r *Resolver) Option {
	return func(u *Updater) { u.resolver = r }
}

// WithExecutablePath overrides the live executable path instead of
// resolving the running process's own binary.
func WithExecutablePath(path string) Option {
	return func(u *Updater) { u.execPath = path }
}

// WithPlatform overrides platform detection.
func WithPlatform(p Platform) Option {
	return func(u *Updater) { u.platform = p }
}

// New creates an Updater for the given current version.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		downloader:     NewDownloader(),
		validator:      NewValidator(),
		platform:       Detect(),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.resolver == nil {
		u.resolver = NewResolver("jfplabs", "jfp", currentVersion)
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			u.resolver = u.resolver.WithToken(token)
		}
	}
	return u
}

// Run performs one update invocation and returns its Result. The Result
// always reaches a terminal status; any failure is additionally returned as
// an error so the caller can exit non-zero. No failure past this boundary is
// unhandled.
func (u *Updater) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{
		CurrentVersion: Normalize(u.currentVersion),
	}

	fail := func(err error) (*Result, error) {
		res.Status = StatusError
		res.Error = err.Error()
		res.Message = "update failed: " + err.Error()
		return res, err
	}

	release, err := u.resolver.LatestRelease(ctx)
	if err != nil {
		return fail(err)
	}

	res.LatestVersion = Normalize(release.TagName)
	res.UpdateAvailable = IsNewer(u.currentVersion, release.TagName)
	log.Debug("resolved latest release",
		"current", res.CurrentVersion,
		"latest", res.LatestVersion,
		"assets", len(release.Assets))

	// Force only applies to an install; in check mode there is nothing to
	// force, so an up-to-date result is reported either way.
	if !res.UpdateAvailable && (opts.CheckOnly || !opts.Force) {
		res.Status = StatusUpToDate
		res.Message = fmt.Sprintf("%s is up to date (%s)", toolName, res.CurrentVersion)
		return res, nil
	}

	// Asset selection is pure; surface the download URL in check mode
	// without touching the network again.
	assetName, assetNameErr := u.platform.AssetName()
	if assetNameErr == nil {
		if asset, findErr := release.FindAsset(assetName); findErr == nil {
			res.DownloadURL = asset.DownloadURL
		}
	}

	if opts.CheckOnly {
		res.Status = StatusUpdateAvailable
		res.Message = fmt.Sprintf("update available: %s -> %s (run '%s update' to install)",
			res.CurrentVersion, res.LatestVersion, toolName)
		return res, nil
	}

	if assetNameErr != nil {
		return fail(assetNameErr)
	}
	asset, err := release.FindAsset(assetName)
	if err != nil {
		return fail(err)
	}

	execPath, err := u.resolveExecPath()
	if err != nil {
		return fail(err)
	}

	// Working state for this invocation: a fresh temp dir holding the
	// candidate and, transiently, the manifest. Removed on every exit path;
	// a failed removal cannot affect the installed executable.
	tmpDir, err := os.MkdirTemp("", toolName+"-update-")
	if err != nil {
		return fail(fmt.Errorf("creating temp dir: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Warn("could not remove temp dir", "path", tmpDir, "err", err)
		}
	}()

	candidate := filepath.Join(tmpDir, assetName)
	log.Debug("downloading asset", "name", assetName, "url", asset.DownloadURL)
	if err := u.downloader.Download(ctx, asset.DownloadURL, candidate); err != nil {
		return fail(err)
	}
	if err := os.Chmod(candidate, 0o755); err != nil {
		return fail(fmt.Errorf("marking candidate executable: %w", err))
	}

	manifestAsset, err := release.FindAsset(manifestAssetName)
	if err != nil {
		return fail(fmt.Errorf("%w: release has no %s", ErrManifestNotFound, manifestAssetName))
	}
	manifestPath := filepath.Join(tmpDir, manifestAssetName)
	if err := u.downloader.Download(ctx, manifestAsset.DownloadURL, manifestPath); err != nil {
		return fail(err)
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return fail(err)
	}
	expected, err := manifest.DigestFor(assetName)
	if err != nil {
		return fail(err)
	}
	if err := VerifyDigest(candidate, expected); err != nil {
		return fail(err)
	}
	log.Debug("digest verified", "asset", assetName, "sha256", expected)

	// First validation, against the temp copy. The installer runs a second
	// one against the live path after the swap.
	if !u.validator.Validate(ctx, candidate) {
		return fail(fmt.Errorf("%w: downloaded binary did not identify itself", ErrValidationFailed))
	}

	installer := NewInstaller(execPath, u.validator)
	if err := installer.Install(ctx, candidate); err != nil {
		return fail(err)
	}

	res.Status = StatusUpdated
	res.Message = fmt.Sprintf("updated %s %s -> %s", toolName, res.CurrentVersion, res.LatestVersion)
	return res, nil
}

// resolveExecPath returns the symlink-resolved path of the live executable.
func (u *Updater) resolveExecPath() (string, error) {
	if u.execPath != "" {
		return u.execPath, nil
	}

	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", fmt.Errorf("resolving executable symlinks: %w", err)
	}
	return resolved, nil
}
