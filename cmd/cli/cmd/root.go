// Package cmd provides the CLI commands for pricebook.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pricebook/adapters/loader"
	"pricebook/core/output"
	"pricebook/internal/config"
	"pricebook/internal/logging"
)

// Version is the CLI version, overridable at link time
var Version = "0.1.0"

var (
	cfgFile       string
	verbose       bool
	pricebookPath string
	outputFormat  string
	noColor       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pricebook",
	Short: "Look up field service prices by region, country, category and level",
	Long: `pricebook answers pricing calculator questions from a regional price table.

Each choice narrows the next: a region offers countries, a country offers
service categories, a category offers service levels. Network operations
levels also need a backfill option.

Examples:
  pricebook regions
  pricebook countries --region EMEA
  pricebook quote --region EMEA --country UK --category fullDayVisit --level L1
  pricebook quote -r EMEA -c UK -k networkOperationsLevels -l L2 --backfill
  pricebook validate --pricebook prices.csv`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pricebook.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&pricebookPath, "pricebook", "p", "", "price table (.json, .yaml, .hcl, .csv, .html)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json, markdown)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig resolves configuration: defaults, config file, .env, environment, then flags
func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if pricebookPath != "" {
		cfg.Pricebook.Path = pricebookPath
	}
	if outputFormat != "" {
		cfg.Output.DefaultFormat = outputFormat
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.Set(cfg)

	switch cfg.Logging.Output {
	case "", "stderr":
		logging.InitializeWriter(cfg.Logging, cmd.ErrOrStderr())
	default:
		if err := logging.Initialize(cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	logging.Debug("configuration loaded")
	return nil
}

// loadPricebook loads the configured price table
func loadPricebook(ctx context.Context) (*loader.Result, error) {
	return loader.Load(ctx, config.Get().Pricebook.Path)
}

func formatOptions() output.Options {
	cfg := config.Get()
	return output.Options{
		NoColor:         cfg.Output.NoColor,
		Verbose:         verbose,
		DefaultCurrency: cfg.Pricebook.DefaultCurrency,
	}
}

// render writes a report in the configured format
func render(cmd *cobra.Command, report *output.Report) error {
	f, err := output.NewRegistry(formatOptions()).Get(config.Get().Output.DefaultFormat)
	if err != nil {
		return err
	}
	return f.Render(cmd.OutOrStdout(), report)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pricebook version %s\n", Version)
	},
}
