package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"lender-quote/core/product"
	"lender-quote/core/quote"
	"lender-quote/core/ratetable"
	"lender-quote/core/types"
)

var ratesFile string

// ratesCmd inspects the loaded rate tables
var ratesCmd = &cobra.Command{
	Use:   "rates [variant]",
	Short: "Show the rate tables",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().StringVar(&ratesFile, "rates", "", "HCL rate override file")
}

func runRates(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine(ratesFile)
	if err != nil {
		return err
	}
	tables := eng.Tables()

	if len(args) == 0 {
		for _, v := range types.Variants {
			fmt.Println(v)
		}
		return nil
	}

	switch types.Variant(args[0]) {
	case types.VariantResidential:
		return dumpJSON(tables.Residential)
	case types.VariantCommercial:
		return dumpJSON(map[string]*ratetable.MatrixTable{
			"commercial":     tables.Commercial,
			"semiCommercial": tables.SemiCommercial,
		})
	case types.VariantPrime:
		return dumpJSON(tables.Prime)
	case types.VariantFusion:
		return dumpJSON(tables.Fusion)
	case types.VariantBridging:
		renderBridgeLimits(tables.Bridging)
		return dumpJSON(tables.Bridging)
	}
	return fmt.Errorf("unknown calculator variant %q", args[0])
}

func dumpJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func renderBridgeLimits(t *ratetable.BridgeTable) {
	for _, name := range product.BridgeProducts(product.BridgeClassResidential, product.FirstCharge) {
		limits, err := product.BridgeProductLimits(t, name)
		if err != nil {
			continue
		}
		fmt.Printf("%-28s %s - %s, up to %s LTV\n", name,
			quote.Money(limits.Sizes.Min), quote.Money(limits.Sizes.Max), limits.MaxLTV)
	}
	fmt.Println()
}
