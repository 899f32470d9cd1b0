package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lender-quote/core/engine"
	"lender-quote/core/quote"
	"lender-quote/core/ratetable"
	"lender-quote/core/types"
	"lender-quote/internal/config"
	"lender-quote/internal/errors"
)

var (
	quoteFields    []string
	quoteJSON      bool
	quoteRatesFile string
)

// quoteCmd computes a quote for one calculator variant
var quoteCmd = &cobra.Command{
	Use:   "quote [variant]",
	Short: "Compute a loan quote",
	Long: `Compute a loan quote for a calculator variant (fusion, residential,
commercial, prime, bridging). Calculation fields are passed as repeated
--set key=value flags using the same field names as the HTTP API.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringArrayVar(&quoteFields, "set", nil, "calculation field as key=value (repeatable)")
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "emit the full result as JSON")
	quoteCmd.Flags().StringVar(&quoteRatesFile, "rates", "", "HCL rate override file")
}

func runQuote(cmd *cobra.Command, args []string) error {
	variant := types.Variant(args[0])

	fields := make(map[string]string, len(quoteFields))
	for _, f := range quoteFields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("--set expects key=value, got %q", f)
		}
		fields[k] = v
	}

	eng, err := buildEngine(quoteRatesFile)
	if err != nil {
		return err
	}

	in, err := engine.ParseInput(fields)
	if err != nil {
		return renderRejection(err)
	}

	result, err := eng.Quote(variant, in)
	if err != nil {
		return renderRejection(err)
	}

	if quoteJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	renderResult(result)
	return nil
}

// buildEngine loads rate tables (built-in, or overridden from an HCL
// file) and applies base-rate overrides from config
func buildEngine(ratesFile string) (*engine.Engine, error) {
	cfg := config.Get()
	if ratesFile == "" {
		ratesFile = cfg.RatesFile
	}

	var tables *ratetable.Tables
	var err error
	if ratesFile != "" {
		tables, err = ratetable.Load(ratesFile)
	} else {
		tables = ratetable.Default()
	}
	if err != nil {
		return nil, err
	}

	applyBaseRateOverrides(tables, cfg)
	return engine.New(tables)
}

// applyBaseRateOverrides pushes config-level BBR/MVR overrides into
// every table that carries them
func applyBaseRateOverrides(tables *ratetable.Tables, cfg *config.Config) {
	matrices := []*ratetable.MatrixTable{
		tables.Residential, tables.Commercial, tables.SemiCommercial, tables.Prime,
	}
	if cfg.StandardBBR > 0 {
		for _, m := range matrices {
			m.StandardBBR = cfg.StandardBBR
		}
		tables.Fusion.BBR = cfg.StandardBBR
		tables.Bridging.StandardBBR = cfg.StandardBBR
	}
	if cfg.CurrentMVR > 0 {
		for _, m := range matrices {
			m.CurrentMVR = cfg.CurrentMVR
		}
	}
}

func renderRejection(err error) error {
	if e, ok := err.(*errors.Error); ok {
		fmt.Printf("Rejected [%s]: %s\n", e.Type, e.Message)
		if maxLoan, ok := e.Context["max_loan"].(float64); ok {
			fmt.Printf("Maximum loan at the LTV cap: %s\n", quote.Money(maxLoan))
		}
		return nil
	}
	return err
}

func renderResult(res *types.QuoteResult) {
	fmt.Printf("Variant: %s\n", res.Variant)
	if res.Tier != "" {
		fmt.Printf("Tier:    %s\n", res.Tier)
	}
	if res.ProductType != "" {
		fmt.Printf("Product: %s\n", res.ProductType)
	}
	fmt.Println()

	for i := range res.Columns {
		renderColumn(&res.Columns[i])
	}
	if res.Single != nil {
		renderColumn(res.Single)
	}
	if res.Fixed != nil {
		renderColumn(res.Fixed)
	}
	if res.Variable != nil {
		renderColumn(res.Variable)
	}

	if res.Best != nil {
		fmt.Printf("Best column: %s%% fee, gross %s (%d%% LTV), net %s (%d%% LTV)\n",
			res.Best.FeeColumn, quote.Money(res.Best.GrossLoan), res.Best.GrossLTVPct,
			quote.Money(res.Best.NetLoan), res.Best.NetLTVPct)
	}
	if res.RevertRate != "" {
		fmt.Printf("Reverts to: %s\n", res.RevertRate)
	}
	if res.ERC != "" {
		fmt.Printf("ERC: %s\n", res.ERC)
	}
	if res.TermDescriptor != "" {
		fmt.Printf("Term: %s\n", res.TermDescriptor)
	}
}

func renderColumn(c *types.ColumnQuote) {
	name := c.ProductName
	if name == "" {
		name = c.FeeColumn + "% fee column"
	}
	fmt.Printf("%s\n", name)
	fmt.Printf("  Rate:          %s (pay %s)\n", c.FullRateText, c.PayRateText)
	fmt.Printf("  Gross loan:    %s (%s LTV, cap %s)\n",
		quote.Money(c.GrossLoan), quote.Percent(c.LTV), quote.Percent(c.MaxLTV))
	fmt.Printf("  Net loan:      %s\n", quote.Money(c.NetLoan))
	fmt.Printf("  Fee:           %s\n", quote.Money(c.FeeAmount))
	if c.RolledInterest > 0 {
		fmt.Printf("  Rolled:        %s (%d months)\n", quote.Money(c.RolledInterest), c.RolledMonths)
	}
	if c.DeferredInterest > 0 {
		fmt.Printf("  Deferred:      %s\n", quote.Money(c.DeferredInterest))
	}
	fmt.Printf("  Monthly DD:    %s\n", quote.Money(c.MonthlyDirectDebit))
	if c.BelowMinLoan {
		fmt.Printf("  Note: below the product minimum loan\n")
	}
	if c.CappedAtMax {
		fmt.Printf("  Note: capped at the product maximum loan\n")
	}
	fmt.Println()
}
