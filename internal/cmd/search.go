package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long:  `Search matches the query against entry names, descriptions, categories, and tags.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderItems(a.store.Search(strings.Join(args, " ")))
		},
	}
}
