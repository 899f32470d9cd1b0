// Package engine orchestrates a quote: classify the risk tier, select
// the product rate, run the solver, assemble the display result. It is
// the only package the boundary layers call into.
package engine

import (
	"strconv"

	"go.uber.org/zap"

	"lender-quote/core/product"
	"lender-quote/core/quote"
	"lender-quote/core/ratetable"
	"lender-quote/core/solver"
	"lender-quote/core/tier"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
	"lender-quote/internal/logging"
)

// Engine computes quotes against an injected, validated rate-table
// bundle. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	tables *ratetable.Tables
}

// New validates the rate tables and returns an engine over them
func New(tables *ratetable.Tables) (*Engine, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &Engine{tables: tables}, nil
}

// Tables exposes the rate data for read-only display surfaces
func (e *Engine) Tables() *ratetable.Tables {
	return e.tables
}

// Quote runs one calculation for a variant. It returns either a result
// or a typed rejection, never both.
func (e *Engine) Quote(variant types.Variant, in types.BorrowerInput) (*types.QuoteResult, error) {
	res, err := e.quote(variant, in)
	if err != nil {
		logging.Logger.Debug("quote rejected",
			zap.String("variant", string(variant)),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (e *Engine) quote(variant types.Variant, in types.BorrowerInput) (*types.QuoteResult, error) {
	switch variant {
	case types.VariantResidential:
		return e.matrixQuote(residentialParams(e.tables.Residential), tier.Residential, in)
	case types.VariantCommercial:
		return e.matrixQuote(commercialParams(e.commercialTable(in.PropertyClass)), tier.Commercial, in)
	case types.VariantPrime:
		return e.matrixQuote(primeParams(e.tables.Prime), tier.Prime, in)
	case types.VariantFusion:
		return e.fusionQuote(in)
	case types.VariantBridging:
		return e.bridgeQuote(in)
	}
	return nil, errors.Invalid("unknown calculator variant " + string(variant))
}

// commercialTable picks the full-commercial or semi-commercial rate
// sheet by property class
func (e *Engine) commercialTable(propertyClass string) *ratetable.MatrixTable {
	if propertyClass == "Semi-Commercial" {
		return e.tables.SemiCommercial
	}
	return e.tables.Commercial
}

func (e *Engine) matrixQuote(p solver.MatrixParams, rules *tier.Ruleset, in types.BorrowerInput) (*types.QuoteResult, error) {
	if in.ProductType == "" {
		return nil, errors.Incomplete("product type")
	}
	if in.PropertyValue < 0 || in.MonthlyRent < 0 {
		return nil, errors.Invalid("property value and monthly rent cannot be negative")
	}
	// Rent is always required. The second constraint depends on the
	// mode: a specific-net quote needs the net target, a forward quote
	// needs the property value.
	if in.MonthlyRent == 0 {
		return nil, errors.Incomplete("monthly rent")
	}
	if in.UseSpecificNet {
		if in.SpecificNetLoan <= 0 {
			return nil, errors.Invalid("please enter a valid positive number for specific net loan")
		}
	} else if in.PropertyValue == 0 {
		return nil, errors.Incomplete("property value")
	}

	t := rules.Classify(in.Risk)
	if t.Excluded() {
		reason, _ := rules.ExclusionReason(in.Risk)
		return nil, errors.Excluded(reason)
	}

	rate, err := product.MatrixRate(p.Table, t, in.ProductType)
	if err != nil {
		return nil, err
	}

	res := solver.SolveMatrix(p, t, rate, in)
	quote.AnnotateMatrix(p.Table, t, res)
	return res, nil
}

func (e *Engine) fusionQuote(in types.BorrowerInput) (*types.QuoteResult, error) {
	if in.PropertyClass == "" {
		return nil, errors.Incomplete("property type")
	}
	single, err := solver.SolveFusion(e.tables.Fusion, in)
	if err != nil {
		return nil, err
	}
	res := &types.QuoteResult{
		Variant:     types.VariantFusion,
		Single:      single,
		StandardBBR: e.tables.Fusion.BBR,
	}
	quote.AnnotateFusion(e.tables.Fusion, res)
	return res, nil
}

func (e *Engine) bridgeQuote(in types.BorrowerInput) (*types.QuoteResult, error) {
	if in.PropertyClass == "" {
		return nil, errors.Incomplete("property type")
	}
	if in.LoanProduct == "" {
		return nil, errors.Incomplete("loan product")
	}
	if in.TermMonths == 0 {
		return nil, errors.Incomplete("loan term")
	}
	br, err := solver.SolveBridge(e.tables.Bridging, in)
	if err != nil {
		return nil, err
	}
	res := &types.QuoteResult{
		Variant:     types.VariantBridging,
		Fixed:       br.Fixed,
		Variable:    br.Variable,
		StandardBBR: e.tables.Bridging.StandardBBR,
	}
	quote.AnnotateBridge(e.tables.Bridging, res)
	return res, nil
}

func residentialParams(t *ratetable.MatrixTable) solver.MatrixParams {
	return solver.MatrixParams{
		Variant:      types.VariantResidential,
		Table:        t,
		RentBasis:    solver.RentOverServicedMonths,
		InverseBasis: solver.InverseStressedWithDeferred,
		MaxLTV: func(tr types.Tier, flags types.RiskFlags) float64 {
			// Flats above commercial premises carry tighter caps on the
			// higher tiers
			if flags.FlatAboveCommercial == "Yes" {
				switch tr {
				case types.Tier2:
					return 0.60
				case types.Tier3:
					return 0.70
				}
			}
			return 0.75
		},
	}
}

func commercialParams(t *ratetable.MatrixTable) solver.MatrixParams {
	return solver.MatrixParams{
		Variant:      types.VariantCommercial,
		Table:        t,
		RentBasis:    solver.RentAnnual,
		InverseBasis: solver.InversePayRate,
		MaxLTV: func(types.Tier, types.RiskFlags) float64 {
			return 0.70
		},
	}
}

func primeParams(t *ratetable.MatrixTable) solver.MatrixParams {
	return solver.MatrixParams{
		Variant:      types.VariantPrime,
		Table:        t,
		RentBasis:    solver.RentOverFullTerm,
		InverseBasis: solver.InverseFeeOnly,
		MaxLTV: func(types.Tier, types.RiskFlags) float64 {
			return 0.75
		},
	}
}

// ParseInput builds a BorrowerInput from flat string fields as
// submitted by a form or query surface. Blank fields parse to zero
// values; malformed numbers are invalid-input rejections naming the
// field.
func ParseInput(fields map[string]string) (types.BorrowerInput, error) {
	var in types.BorrowerInput
	var err error

	numbers := []struct {
		key string
		dst *float64
	}{
		{"propertyValue", &in.PropertyValue},
		{"monthlyRent", &in.MonthlyRent},
		{"grossLoan", &in.GrossLoan},
		{"specificNetLoan", &in.SpecificNetLoan},
		{"firstChargeBalance", &in.FirstChargeBalance},
		{"deferredRate", &in.DeferredRate},
	}
	for _, n := range numbers {
		if *n.dst, err = parseFloat(fields, n.key); err != nil {
			return in, err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"termMonths", &in.TermMonths},
		{"rolledMonths", &in.RolledMonths},
	}
	for _, n := range ints {
		if *n.dst, err = parseInt(fields, n.key); err != nil {
			return in, err
		}
	}

	in.UseSpecificNet = fields["useSpecificNet"] == "true" || fields["useSpecificNet"] == "yes"
	if in.SpecificNetLoan > 0 && fields["useSpecificNet"] == "" {
		in.UseSpecificNet = true
	}

	in.ProductType = fields["productType"]
	in.PropertyClass = fields["propertyClass"]
	in.LoanProduct = fields["loanProduct"]
	in.ChargeType = fields["chargeType"]

	in.Risk = types.RiskFlags{
		HMO:                 fields["hmo"],
		MUFB:                fields["mufb"],
		HolidayLet:          fields["holidayLet"],
		FlatAboveCommercial: fields["flatAboveCommercial"],
		OwnerOccupied:       fields["ownerOccupied"],
		DevelopmentExit:     fields["developmentExit"],
		Expat:               fields["expat"],
		FirstTimeLandlord:   fields["firstTimeLandlord"],
		FirstTimeBuyer:      fields["firstTimeBuyer"],
		OffshoreCompany:     fields["offshoreCompany"],
		AdverseCredit:       fields["adverseCredit"],
		MortgageArrears:     fields["mortgageArrears"],
		UnsecuredArrears:    fields["unsecuredArrears"],
		CCJDefault:          fields["ccjDefault"],
		Bankruptcy:          fields["bankruptcy"],
	}
	return in, nil
}

func parseFloat(fields map[string]string, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Invalid(key + " must be a number")
	}
	return v, nil
}

func parseInt(fields map[string]string, key string) (int, error) {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Invalid(key + " must be a whole number")
	}
	return v, nil
}
