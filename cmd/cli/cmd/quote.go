// Package cmd - quote command
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pricebook/core/calculator"
	"pricebook/core/output"
	"pricebook/core/pricebook"
)

var (
	quoteSel        pricebook.Selection
	quoteBackfill   bool
	quoteNoBackfill bool
)

// quoteCmd resolves a price the way the calculator form does
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate the price of a selection",
	Long: `Calculate the price for a region, country, category and service level.

Every value must be one the calculator offers for the choices before it.
Network operations levels also need --backfill or --no-backfill.
A selection the table has no price for prints "-".

Examples:
  pricebook quote --region EMEA --country UK --category fullDayVisit --level L1
  pricebook quote -r EMEA -c UK -k networkOperationsLevels -l L2 --no-backfill`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteSel.Region, "region", "r", "", "region name")
	quoteCmd.Flags().StringVarP(&quoteSel.Country, "country", "c", "", "country name")
	quoteCmd.Flags().StringVarP((*string)(&quoteSel.Category), "category", "k", "", "category key")
	quoteCmd.Flags().StringVarP(&quoteSel.Level, "level", "l", "", "service level")
	quoteCmd.Flags().BoolVar(&quoteBackfill, "backfill", false, "network operations level with backfill")
	quoteCmd.Flags().BoolVar(&quoteNoBackfill, "no-backfill", false, "network operations level without backfill")
	quoteCmd.MarkFlagsMutuallyExclusive("backfill", "no-backfill")

	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	res, err := loadPricebook(cmd.Context())
	if err != nil {
		return err
	}

	sel := quoteSel
	switch {
	case quoteBackfill:
		sel.Modifier = pricebook.ModifierWithBackfill
	case quoteNoBackfill:
		sel.Modifier = pricebook.ModifierWithoutBackfill
	}
	if !sel.NeedsModifier() {
		sel.Modifier = ""
	}

	form := calculator.New(res.Table)
	if err := form.Apply(sel); err != nil {
		return explainOption(form, sel, err)
	}

	result, err := form.Calculate()
	if err != nil {
		if errors.Is(err, calculator.ErrNotReady) && sel.NeedsModifier() && sel.Level != "" {
			return fmt.Errorf("%w: network operations levels need --backfill or --no-backfill", err)
		}
		return fmt.Errorf("%w: --region, --country, --category and --level are required", err)
	}
	return render(cmd, &output.Report{Title: "Quote", Quote: &result})
}

// explainOption names the first field that was rejected and what it could have been
func explainOption(form *calculator.Form, sel pricebook.Selection, err error) error {
	probe := calculator.New(form.Table())
	for _, field := range pricebook.Fields() {
		value := sel.Get(field)
		if value == "" {
			continue
		}
		if probe.Set(field, value) != nil {
			opts := probe.Options(field)
			if len(opts) == 0 || !probe.Enabled(field) {
				return err
			}
			return fmt.Errorf("%w (available %s: %s)", err, field, strings.Join(opts, ", "))
		}
	}
	return err
}
