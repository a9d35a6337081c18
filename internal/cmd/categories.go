package cmd

import (
	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List all catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderNames(a.store.Categories())
		},
	}
}
