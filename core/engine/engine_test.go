package engine

import (
	"math"
	"testing"

	"lender-quote/core/ratetable"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(ratetable.Default())
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	return eng
}

// TestMatrixRequiresProductType proves a missing product type is an
// incomplete-input prompt, not an invalid-input alarm
func TestMatrixRequiresProductType(t *testing.T) {
	eng := testEngine(t)
	_, err := eng.Quote(types.VariantResidential, types.BorrowerInput{
		PropertyValue: 400000,
		MonthlyRent:   1800,
	})
	if !errors.IsType(err, errors.TypeIncompleteInput) {
		t.Errorf("expected INCOMPLETE_INPUT, got %v", err)
	}
}

// TestMatrixRequiresMonthlyRent proves no matrix quote is produced
// without rent, however complete the rest of the form is
func TestMatrixRequiresMonthlyRent(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantResidential, types.BorrowerInput{
		PropertyValue: 400000,
		ProductType:   "2yr Fix",
	})
	if res != nil {
		t.Error("rent-less input produced a quote")
	}
	if !errors.IsType(err, errors.TypeIncompleteInput) {
		t.Errorf("expected INCOMPLETE_INPUT, got %v", err)
	}
}

// TestMatrixRequiresPropertyValueForward proves a forward quote is
// prompted for the value even when rent alone could bound a loan
func TestMatrixRequiresPropertyValueForward(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantResidential, types.BorrowerInput{
		MonthlyRent: 1800,
		ProductType: "2yr Fix",
	})
	if res != nil {
		t.Error("value-less forward input produced a quote")
	}
	if !errors.IsType(err, errors.TypeIncompleteInput) {
		t.Errorf("expected INCOMPLETE_INPUT, got %v", err)
	}
}

// TestMatrixSpecificNetWithoutValue proves inverse mode needs rent and
// the net target but not the property value
func TestMatrixSpecificNetWithoutValue(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantResidential, types.BorrowerInput{
		MonthlyRent:     1800,
		ProductType:     "2yr Fix",
		UseSpecificNet:  true,
		SpecificNetLoan: 250000,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(res.Columns) == 0 {
		t.Fatal("no columns quoted")
	}
	for _, c := range res.Columns {
		if c.LTV != 0 {
			t.Errorf("column %s carries an LTV with no property value", c.FeeColumn)
		}
	}
}

// TestResidentialQuoteEndToEnd proves classification, rate selection,
// solving and display assembly hang together
func TestResidentialQuoteEndToEnd(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantResidential, types.BorrowerInput{
		PropertyValue: 400000,
		MonthlyRent:   1800,
		ProductType:   "2yr Fix",
		Risk:          types.RiskFlags{HMO: "Up to 6 beds (Tier 2)"},
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if res.Tier != "Tier 2" {
		t.Errorf("tier = %q, want Tier 2", res.Tier)
	}
	if len(res.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(res.Columns))
	}
	if res.Columns[0].FullRateText == "" {
		t.Error("display text not assembled")
	}
	if res.RevertRate != "MVR + 0.4%" {
		t.Errorf("revert rate = %q, want MVR + 0.4%%", res.RevertRate)
	}
	if res.ERC == "" {
		t.Error("ERC not assembled")
	}
	if res.Best == nil {
		t.Error("best column not assembled")
	}
}

// TestPrimeExclusionSuppressesQuote proves an excluded profile gets the
// exclusion reason and no figures
func TestPrimeExclusionSuppressesQuote(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantPrime, types.BorrowerInput{
		PropertyValue: 400000,
		MonthlyRent:   1800,
		ProductType:   "2yr Fix",
		Risk:          types.RiskFlags{HolidayLet: "Yes"},
	})
	if res != nil {
		t.Error("excluded profile produced a quote")
	}
	if !errors.IsType(err, errors.TypeExcluded) {
		t.Errorf("expected EXCLUDED, got %v", err)
	}
}

// TestCommercialPropertyClassSelectsTable proves the semi-commercial
// class quotes from its own rate sheet
func TestCommercialPropertyClassSelectsTable(t *testing.T) {
	eng := testEngine(t)
	in := types.BorrowerInput{
		PropertyValue: 800000,
		MonthlyRent:   4000,
		ProductType:   "2yr Fix",
	}

	full, err := eng.Quote(types.VariantCommercial, in)
	if err != nil {
		t.Fatalf("full commercial quote failed: %v", err)
	}

	in.PropertyClass = "Semi-Commercial"
	semi, err := eng.Quote(types.VariantCommercial, in)
	if err != nil {
		t.Fatalf("semi-commercial quote failed: %v", err)
	}

	if full.Columns[0].CouponRate != 0.0629 {
		t.Errorf("full commercial 6%% fee coupon = %v, want 0.0629", full.Columns[0].CouponRate)
	}
	if semi.Columns[0].CouponRate != 0.0619 {
		t.Errorf("semi-commercial 6%% fee coupon = %v, want 0.0619", semi.Columns[0].CouponRate)
	}
}

// TestCommercialTrackerCaps proves a commercial tracker quote carries
// the commercial sheet's own ceilings rather than residential's: 6
// rolled months and a 1.5% deferred cap on every fee column
func TestCommercialTrackerCaps(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantCommercial, types.BorrowerInput{
		PropertyValue: 800000,
		MonthlyRent:   4000,
		ProductType:   "2yr Tracker",
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(res.Columns) == 0 {
		t.Fatal("no columns quoted")
	}
	for _, c := range res.Columns {
		if c.RolledMonths != 6 {
			t.Errorf("column %s rolled months = %d, want 6", c.FeeColumn, c.RolledMonths)
		}
		if c.DeferredCap != 0.015 {
			t.Errorf("column %s deferred cap = %v, want 0.015", c.FeeColumn, c.DeferredCap)
		}
	}
}

// TestFlatAboveCommercialTightensCap proves the residential LTV cap
// drops for flats above commercial premises on the higher tiers
func TestFlatAboveCommercialTightensCap(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantResidential, types.BorrowerInput{
		PropertyValue: 400000,
		MonthlyRent:   10000,
		ProductType:   "2yr Fix",
		Risk:          types.RiskFlags{FlatAboveCommercial: "Yes"},
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	// The flag itself classifies as Tier 2, where the cap is 60%
	if res.Tier != "Tier 2" {
		t.Fatalf("tier = %q, want Tier 2", res.Tier)
	}
	if got := res.Columns[0].MaxLTV; got != 0.60 {
		t.Errorf("max LTV = %v, want 0.60", got)
	}
	if got := res.Columns[0].GrossLoan; math.Abs(got-240000) > 1e-6 {
		t.Errorf("gross = %v, want 240000", got)
	}
}

// TestFusionQuoteEndToEnd proves the fusion path through the engine
func TestFusionQuoteEndToEnd(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantFusion, types.BorrowerInput{
		PropertyValue: 4000000,
		GrossLoan:     3000000,
		PropertyClass: ratetable.FusionResidential,
		RolledMonths:  6,
		DeferredRate:  0.01,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if res.Single == nil {
		t.Fatal("no single quote assembled")
	}
	if res.Single.FullRateText != "4.79% + BBR" {
		t.Errorf("rate text = %q", res.Single.FullRateText)
	}
	if res.TermDescriptor != "24 Months (12m Extension Possible)" {
		t.Errorf("term descriptor = %q", res.TermDescriptor)
	}
}

// TestBridgingQuoteEndToEnd proves the bridging path through the engine
func TestBridgingQuoteEndToEnd(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.Quote(types.VariantBridging, types.BorrowerInput{
		PropertyValue: 1000000,
		GrossLoan:     600000,
		PropertyClass: "Residential",
		ChargeType:    "First Charge",
		LoanProduct:   ratetable.BridgeSingleProperty,
		TermMonths:    12,
		RolledMonths:  3,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if res.Fixed == nil || res.Variable == nil {
		t.Fatal("bridging should quote both rate types")
	}
}

// TestUnknownVariantRejected proves a bad variant is a typed rejection
func TestUnknownVariantRejected(t *testing.T) {
	eng := testEngine(t)
	_, err := eng.Quote(types.Variant("heloc"), types.BorrowerInput{PropertyValue: 1})
	if !errors.IsType(err, errors.TypeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

// TestParseInputMalformedNumber proves a non-numeric field is invalid
// input naming the field
func TestParseInputMalformedNumber(t *testing.T) {
	_, err := ParseInput(map[string]string{"propertyValue": "four hundred"})
	if !errors.IsType(err, errors.TypeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

// TestParseInputBlankIsZero proves absent and blank fields parse to
// zero values rather than erroring
func TestParseInputBlankIsZero(t *testing.T) {
	in, err := ParseInput(map[string]string{"propertyValue": "", "monthlyRent": "1800"})
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if in.PropertyValue != 0 || in.MonthlyRent != 1800 {
		t.Errorf("parsed %+v", in)
	}
}

// TestParseInputSpecificNetImpliesInverse proves a net loan figure
// switches the calculation to inverse mode without an explicit flag
func TestParseInputSpecificNetImpliesInverse(t *testing.T) {
	in, err := ParseInput(map[string]string{"specificNetLoan": "250000"})
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if !in.UseSpecificNet {
		t.Error("specific net loan should imply inverse mode")
	}
}

// TestParseInputRiskFlags proves the risk option strings carry through
func TestParseInputRiskFlags(t *testing.T) {
	in, err := ParseInput(map[string]string{
		"hmo":           "Up to 6 beds (Tier 2)",
		"adverseCredit": "Yes",
		"bankruptcy":    "Never",
	})
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if in.Risk.HMO != "Up to 6 beds (Tier 2)" || in.Risk.AdverseCredit != "Yes" || in.Risk.Bankruptcy != "Never" {
		t.Errorf("risk flags not carried: %+v", in.Risk)
	}
}
