package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// Installer performs the backup-then-replace-then-verify sequence against
// the live executable path, rolling back to the backup if the newly
// installed binary fails verification.
//
// The install itself is a rename of the candidate over the existing live
// path. Rename-over-existing is an atomic directory entry swap on POSIX
// filesystems, so the live path never stops existing during a normal
// install. The backup is therefore taken as a byte copy, leaving the old
// binary in place until the swap.
type Installer struct {
	targetPath string
	backupPath string
	lockPath   string
	validator  *Validator
	backedUp   bool
}

// NewInstaller creates an Installer for the live executable at targetPath.
func NewInstaller(targetPath string, v *Validator) *Installer {
	return &Installer{
		targetPath: targetPath,
		backupPath: targetPath + ".bak",
		lockPath:   targetPath + ".lock",
		validator:  v,
	}
}

// BackupPath returns the sibling path the previous binary is preserved at
// during an install.
func (i *Installer) BackupPath() string { return i.backupPath }

// Install replaces the live executable with the candidate binary.
//
// On success the candidate has been validated in place and the backup
// removed. On any handled failure the previous binary is back at the live
// path. The one exception is *RollbackError: restoring the backup itself
// failed, and the live executable may be broken — the error carries the
// backup path for manual recovery.
func (i *Installer) Install(ctx context.Context, candidate string) error {
	if err := i.acquireLock(); err != nil {
		return err
	}
	defer i.releaseLock()

	if err := i.backup(); err != nil {
		return &InstallError{Op: "backup", Err: err}
	}

	if err := i.place(candidate); err != nil {
		if rbErr := i.rollback(); rbErr != nil {
			return &RollbackError{BackupPath: i.backupPath, Err: rbErr}
		}
		return &InstallError{Op: "install", Err: err}
	}

	// Second, independent validation against the live path. The candidate
	// was already validated in the temp dir; this catches corruption
	// introduced by the move or copy itself.
	if !i.validator.Validate(ctx, i.targetPath) {
		if rbErr := i.rollback(); rbErr != nil {
			return &RollbackError{BackupPath: i.backupPath, Err: rbErr}
		}
		return fmt.Errorf("%w: installed binary rejected, previous version restored", ErrValidationFailed)
	}

	// Verified: the backup is no longer needed. Removal is best-effort; a
	// stale .bak cannot affect the installed executable. A fresh install
	// into an empty path took no backup, so there is nothing to remove.
	if i.backedUp {
		if err := os.Remove(i.backupPath); err != nil {
			log.Warn("could not remove backup", "path", i.backupPath, "err", err)
		}
		i.backedUp = false
	}

	return nil
}

// backup preserves the live binary at <target>.bak, first deleting any stale
// backup from an earlier run. The live path is copied, not moved, so it
// remains present until the install swap.
func (i *Installer) backup() error {
	info, err := os.Stat(i.targetPath)
	if errors.Is(err, fs.ErrNotExist) {
		// Nothing to back up; first install into an empty path.
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.Remove(i.backupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stale backup: %w", err)
	}

	if err := copyFile(i.targetPath, i.backupPath, info.Mode().Perm()); err != nil {
		return err
	}

	i.backedUp = true
	return nil
}

// place moves the candidate onto the live path. The primary path is an
// atomic same-directory rename; if that fails (typically because the temp
// dir is on another filesystem), fall back to a byte copy plus restoring the
// executable bit. The fallback opens a brief non-atomic window and is the
// accepted weaker guarantee.
func (i *Installer) place(candidate string) error {
	if err := os.Rename(candidate, i.targetPath); err == nil {
		return nil
	}

	if err := copyFile(candidate, i.targetPath, 0o755); err != nil {
		return err
	}
	_ = os.Remove(candidate)
	return nil
}

// rollback renames the backup over the live path, restoring the previous
// executable exactly.
func (i *Installer) rollback() error {
	if !i.backedUp {
		return nil
	}
	if err := os.Rename(i.backupPath, i.targetPath); err != nil {
		return fmt.Errorf("restoring backup: %w", err)
	}
	i.backedUp = false
	return nil
}

// acquireLock takes an exclusive create-only lock file next to the live
// executable so two invocations cannot race on the same backup/rename
// sequence.
func (i *Installer) acquireLock() error {
	f, err := os.OpenFile(i.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w (lock held at %s)", ErrUpdateInProgress, i.lockPath)
	}
	if err != nil {
		return fmt.Errorf("acquiring install lock: %w", err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	return f.Close()
}

func (i *Installer) releaseLock() {
	if err := os.Remove(i.lockPath); err != nil {
		log.Warn("could not remove install lock", "path", i.lockPath, "err", err)
	}
}

// copyFile writes a byte-for-byte copy of src at dst with the given
// permissions, truncating any existing file.
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}

	return out.Close()
}
