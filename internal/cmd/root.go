// Package cmd wires the jfp command-line interface.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jfplabs/jfp/internal/config"
	"github.com/jfplabs/jfp/internal/content"
	"github.com/jfplabs/jfp/internal/moderation"
	"github.com/jfplabs/jfp/internal/output"
	"github.com/jfplabs/jfp/internal/referral"
)

// app carries the wired-up stores and settings shared by all subcommands.
type app struct {
	version string
	commit  string
	date    string

	outputFormat string
	configPath   string
	verbose      bool

	cfg    *config.Config
	store  *content.Store
	mod    *moderation.Store
	refs   *referral.Store
	stdout io.Writer

	initialized bool
}

// Execute runs the CLI. version, commit and date are injected at build time.
func Execute(version, commit, date string) error {
	a := &app{
		version: version,
		commit:  commit,
		date:    date,
		stdout:  os.Stdout,
	}
	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jfp",
		Short: "Browse the jfp catalog and keep the tool up to date",
		Long: `jfp is the command-line companion to the jfp content platform.

Browse the curated catalog by category or tag, search it, open entries in
your browser, and keep the tool itself current with 'jfp update'.`,
		Version:       a.version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newRandomCmd(a))
	rootCmd.AddCommand(newCategoriesCmd(a))
	rootCmd.AddCommand(newTagsCmd(a))
	rootCmd.AddCommand(newOpenCmd(a))
	rootCmd.AddCommand(newAboutCmd(a))
	rootCmd.AddCommand(newDoctorCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// init loads configuration and builds the stores. Tests may pre-populate the
// app, in which case init leaves it alone.
func (a *app) init() error {
	if a.initialized {
		return nil
	}

	if a.verbose {
		log.SetLevel(log.DebugLevel)
	}

	path := a.configPath
	if path == "" {
		path = config.Locate()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.outputFormat == "" {
		a.outputFormat = cfg.Output
	}
	if _, err := output.ParseFormat(a.outputFormat); err != nil {
		return err
	}

	a.mod = moderation.NewStore()

	store, err := content.NewEmbeddedStore()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	a.store = store.WithHider(a.mod)

	a.refs = referral.NewStore(cfg.Referral.Codes)

	a.initialized = true
	return nil
}

// writer returns an output writer for the selected format.
func (a *app) writer() (*output.Writer, error) {
	format, err := output.ParseFormat(a.outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(a.stdout, format), nil
}
