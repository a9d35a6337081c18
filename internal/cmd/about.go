package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAboutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show version and build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, styleHeading.Render("jfp"))
			fmt.Fprintf(a.stdout, "version: %s\n", a.version)
			fmt.Fprintf(a.stdout, "commit:  %s\n", a.commit)
			fmt.Fprintf(a.stdout, "built:   %s\n", a.date)
			fmt.Fprintf(a.stdout, "catalog: %d entries\n", len(a.store.List()))
			return nil
		},
	}
}
