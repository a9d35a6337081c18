package cmd

import (
	"github.com/spf13/cobra"
)

func newRandomCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.store.Random()
			if err != nil {
				return err
			}
			return a.renderItem(item)
		},
	}
}
