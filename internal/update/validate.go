package update

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// validateTimeout bounds how long a candidate binary may take to identify
// itself. A healthy binary answers --version in milliseconds; a broken one
// must not hang the update.
const validateTimeout = 5 * time.Second

// Validator confirms that a downloaded file is a working jfp executable by
// running it and inspecting its output.
type Validator struct {
	token   string
	timeout time.Duration
}

// NewValidator creates a Validator that expects the tool's own name in the
// probe output.
func NewValidator() *Validator {
	return &Validator{
		token:   toolName,
		timeout: validateTimeout,
	}
}

// Validate runs the executable at path with --version and reports whether it
// exited zero with output containing the identifying token. Any spawn
// failure, timeout, non-zero exit, or missing token is false; Validate never
// returns an error, so a bad candidate is an ordinary rejection rather than
// a crash.
//
// WaitDelay bounds the wait even when the candidate forks a child that
// inherits the stdout pipe: without it, Wait blocks past the kill until
// every writer closes, and a daemonizing binary would hang the update.
func (v *Validator) Validate(ctx context.Context, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.WaitDelay = v.timeout
	out, err := cmd.Output()
	if err != nil {
		log.Debug("binary validation failed", "path", path, "err", err)
		return false
	}

	if !strings.Contains(string(out), v.token) {
		log.Debug("binary validation output missing token", "path", path, "output", strings.TrimSpace(string(out)))
		return false
	}

	return true
}
