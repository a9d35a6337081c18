package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newOpenCmd(a *app) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a catalog entry in the browser",
		Long: `Open launches the entry's URL in the default browser. Outbound links
carry the platform referral code unless disabled in the config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.store.Get(args[0])
			if err != nil {
				return err
			}

			url := item.URL
			if !a.cfg.Referral.Disabled {
				url = a.refs.Apply(url)
			}

			if printOnly {
				fmt.Fprintln(a.stdout, url)
				return nil
			}

			log.Debug("opening url", "id", item.ID, "url", url)
			return launchBrowser(url)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the URL instead of opening it")

	return cmd
}

// launchBrowser starts the platform's URL handler without waiting for it.
func launchBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
