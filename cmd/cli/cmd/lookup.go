// Package cmd - cascading lookup commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricebook/core/calculator"
	"pricebook/core/output"
	"pricebook/core/pricebook"
)

var lookupSel pricebook.Selection

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, "Regions", func(t *pricebook.Table) []calculator.Option {
			return plainOptions(pricebook.RegionsOf(t))
		})
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries of a region",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, "Countries in "+orNone(lookupSel.Region), func(t *pricebook.Table) []calculator.Option {
			return plainOptions(pricebook.CountriesOf(t, lookupSel.Region))
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the service categories offered in a country",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := fmt.Sprintf("Categories in %s / %s", orNone(lookupSel.Region), orNone(lookupSel.Country))
		return runLookup(cmd, title, func(t *pricebook.Table) []calculator.Option {
			cats := pricebook.AvailableCategories(t, lookupSel.Region, lookupSel.Country)
			opts := make([]calculator.Option, 0, len(cats))
			for _, c := range cats {
				opts = append(opts, calculator.Option{Value: string(c), Label: pricebook.CategoryLabel(c)})
			}
			return opts
		})
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the service levels of a category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := "Levels for " + pricebook.CategoryLabel(lookupSel.Category)
		return runLookup(cmd, title, func(t *pricebook.Table) []calculator.Option {
			return plainOptions(pricebook.LevelsFor(t, lookupSel.Region, lookupSel.Country, lookupSel.Category))
		})
	},
}

func init() {
	countriesCmd.Flags().StringVarP(&lookupSel.Region, "region", "r", "", "region name")

	for _, c := range []*cobra.Command{categoriesCmd, levelsCmd} {
		c.Flags().StringVarP(&lookupSel.Region, "region", "r", "", "region name")
		c.Flags().StringVarP(&lookupSel.Country, "country", "c", "", "country name")
	}
	levelsCmd.Flags().StringVarP((*string)(&lookupSel.Category), "category", "k", "", "category key, e.g. fullDayVisit")

	rootCmd.AddCommand(regionsCmd, countriesCmd, categoriesCmd, levelsCmd)
}

func runLookup(cmd *cobra.Command, title string, list func(*pricebook.Table) []calculator.Option) error {
	res, err := loadPricebook(cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd, &output.Report{Title: title, Options: list(res.Table)})
}

func plainOptions(values []string) []calculator.Option {
	opts := make([]calculator.Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, calculator.Option{Value: v, Label: v})
	}
	return opts
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
