package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jfplabs/jfp/internal/content"
)

func newListCmd(a *app) *cobra.Command {
	var category, tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Long:  `List shows the catalog, optionally filtered by category or tag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []content.Item
			switch {
			case category != "":
				items = a.store.ByCategory(category)
			case tag != "":
				items = a.store.ByTag(tag)
			default:
				items = a.store.List()
			}
			return a.renderItems(items)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show entries in this category")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only show entries carrying this tag")

	return cmd
}
