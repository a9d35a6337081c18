package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfplabs/jfp/internal/output"
	"github.com/jfplabs/jfp/internal/update"
)

type doctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local installation",
		Long:  `Doctor verifies the pieces a self-update depends on: config, platform support, write access to the executable, and release feed reachability.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := a.runDoctorChecks(cmd.Context())

			w, err := a.writer()
			if err != nil {
				return err
			}
			if w.Format() != output.FormatText {
				if err := w.Write(checks); err != nil {
					return err
				}
			} else {
				for _, c := range checks {
					marker := styleOK.Render("ok")
					if !c.OK {
						marker = styleFail.Render("fail")
					}
					fmt.Fprintf(a.stdout, "%-4s  %-20s %s\n", marker, c.Name, c.Detail)
				}
			}

			for _, c := range checks {
				if !c.OK {
					return fmt.Errorf("%d of %d checks failed", countFailed(checks), len(checks))
				}
			}
			return nil
		},
	}
}

func countFailed(checks []doctorCheck) int {
	n := 0
	for _, c := range checks {
		if !c.OK {
			n++
		}
	}
	return n
}

func (a *app) runDoctorChecks(ctx context.Context) []doctorCheck {
	var checks []doctorCheck

	checks = append(checks, doctorCheck{
		Name:   "config",
		OK:     true,
		Detail: fmt.Sprintf("feed %s/%s", a.cfg.Feed.Owner, a.cfg.Feed.Repo),
	})

	platform := update.Detect()
	if name, err := platform.AssetName(); err == nil {
		checks = append(checks, doctorCheck{Name: "platform", OK: true, Detail: name})
	} else {
		checks = append(checks, doctorCheck{Name: "platform", OK: false, Detail: err.Error()})
	}

	checks = append(checks, a.checkExecutableWritable())
	checks = append(checks, a.checkFeed(ctx))

	return checks
}

func (a *app) checkExecutableWritable() doctorCheck {
	exe, err := os.Executable()
	if err != nil {
		return doctorCheck{Name: "executable", OK: false, Detail: err.Error()}
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return doctorCheck{Name: "executable", OK: false, Detail: err.Error()}
	}

	// Self-update needs write access to the binary's own path.
	f, err := os.OpenFile(resolved, os.O_WRONLY, 0)
	if err != nil {
		return doctorCheck{Name: "executable", OK: false, Detail: fmt.Sprintf("%s is not writable", resolved)}
	}
	_ = f.Close()
	return doctorCheck{Name: "executable", OK: true, Detail: resolved}
}

func (a *app) checkFeed(ctx context.Context) doctorCheck {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	release, err := a.newResolver().LatestRelease(ctx)
	if err != nil {
		return doctorCheck{Name: "release feed", OK: false, Detail: err.Error()}
	}
	return doctorCheck{Name: "release feed", OK: true, Detail: "latest is " + release.TagName}
}
