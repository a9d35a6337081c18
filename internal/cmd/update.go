package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfplabs/jfp/internal/update"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		check  bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update jfp to the latest release",
		Long: `Update checks the release feed for a newer version and, unless --check
is given, downloads it, verifies its SHA-256 checksum against the release
manifest, confirms the binary runs, and atomically replaces the current
executable. The previous binary is kept as a backup until the new one is
verified in place.`,
		Example: `  jfp update            # install the latest version
  jfp update --check    # report whether an update exists
  jfp update --force    # reinstall even when up to date
  jfp update --json     # machine-readable result`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The result envelope is the contract; suppress cobra's own
			// error reporting so it is not printed twice.
			cmd.SilenceErrors = true

			updater := update.New(a.version,
				update.WithResolver(a.newResolver()),
			)

			res, err := updater.Run(cmd.Context(), update.Options{
				CheckOnly: check,
				Force:     force,
			})

			if renderErr := renderUpdateResult(a.stdout, res, asJSON); renderErr != nil {
				return renderErr
			}

			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as a single JSON object")
	cmd.Flags().BoolVar(&check, "check", false, "Check for updates without installing")
	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even when already up to date")

	return cmd
}

// newResolver builds the release resolver from the configured feed.
func (a *app) newResolver() *update.Resolver {
	r := update.NewResolver(a.cfg.Feed.Owner, a.cfg.Feed.Repo, a.version)
	if a.cfg.Feed.BaseURL != "" {
		r = r.WithBaseURL(a.cfg.Feed.BaseURL)
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		r = r.WithToken(token)
	}
	return r
}

// renderUpdateResult writes the result as formatted text or as the JSON
// envelope. The result always carries a terminal status, including errors.
func renderUpdateResult(w io.Writer, res *update.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	switch res.Status {
	case update.StatusUpToDate:
		fmt.Fprintln(w, res.Message)
	case update.StatusUpdateAvailable:
		fmt.Fprintf(w, "%s %s\n", styleOK.Render("update available:"),
			fmt.Sprintf("%s -> %s", res.CurrentVersion, res.LatestVersion))
		if res.DownloadURL != "" {
			fmt.Fprintf(w, "  %s\n", styleURL.Render(res.DownloadURL))
		}
		fmt.Fprintln(w, "run 'jfp update' to install")
	case update.StatusUpdated:
		fmt.Fprintf(w, "%s %s\n", styleOK.Render("updated:"), res.Message)
	case update.StatusError:
		// The caller surfaces the error itself; nothing extra to print in
		// text mode.
	}
	return nil
}
