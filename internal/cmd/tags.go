package cmd

import (
	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all catalog tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderNames(a.store.Tags())
		},
	}
}
