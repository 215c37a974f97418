// Package cmd - pricebook inspection commands
package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"pricebook/core/output"
	"pricebook/core/pricebook"
	"pricebook/core/ui"
	"pricebook/internal/config"
)

var inspectDump bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the price table",
	Long: `Summarize the configured price table and list entries that were skipped.

With --dump the decoded table is printed in full, which helps when a
spreadsheet export does not produce the categories you expect.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the price table for malformed entries",
	Long: `Load the price table and report every malformed entry.

Malformed entries never stop the calculator: they are skipped or shown as
"-". This command exits non-zero when any were found so CI can catch them.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectDump, "dump", false, "print the decoded table")

	rootCmd.AddCommand(inspectCmd, validateCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	res, err := loadPricebook(cmd.Context())
	if err != nil {
		return err
	}

	if inspectDump {
		dumper := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
		dumper.Fdump(cmd.OutOrStdout(), res.Table)
		return nil
	}

	return render(cmd, &output.Report{
		Title: "Pricebook",
		Summary: &output.Summary{
			Source: res.Source,
			Format: string(res.Format),
			Stats:  res.Table.Stats(),
		},
		Issues: res.Issues,
	})
}

func runValidate(cmd *cobra.Command, args []string) error {
	res, err := loadPricebook(cmd.Context())
	if err != nil {
		return err
	}

	issues := combineIssues(res.Issues)
	if issues == nil {
		ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor).
			Success("%s: ok (%d prices)", config.Get().Pricebook.Path, res.Table.Stats().Prices)
		return nil
	}

	errs := multierr.Errors(issues)
	for _, e := range errs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", res.Source, e)
	}
	return fmt.Errorf("%d malformed entries in %s", len(errs), res.Source)
}

func combineIssues(issues []pricebook.Issue) error {
	var err error
	for _, issue := range issues {
		err = multierr.Append(err, issue)
	}
	return err
}
