package solver

import (
	"fmt"

	"lender-quote/core/product"
	"lender-quote/core/ratetable"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

// bridgeLtvEpsilon tolerates float drift when the back-solved gross
// lands exactly on a tier cap
const bridgeLtvEpsilon = 1e-10

// BridgeResult carries the side-by-side fixed and variable
// illustrations bridging always quotes together
type BridgeResult struct {
	Fixed    *types.ColumnQuote
	Variable *types.ColumnQuote
}

// SolveBridge computes a bridging quote for both rate types.
//
// The LTV used for rate-tier selection includes the existing
// first-charge balance whenever the new lending is not itself a first
// charge: the combined exposure is what the security has to cover.
func SolveBridge(t *ratetable.BridgeTable, in types.BorrowerInput) (*BridgeResult, error) {
	if in.PropertyValue <= 0 {
		return nil, errors.Invalid("please enter a valid property value")
	}
	if in.TermMonths < t.MinTermMonths || in.TermMonths > t.MaxTermMonths {
		return nil, errors.Newf(errors.TypeInvalidInput,
			"loan term must be between %d and %d months", t.MinTermMonths, t.MaxTermMonths)
	}
	if in.RolledMonths < 0 {
		return nil, errors.Invalid("rolled months cannot be negative")
	}
	if in.RolledMonths > in.TermMonths {
		return nil, errors.Invalid("rolled months cannot be greater than the loan term")
	}
	if in.ChargeType == product.SecondCharge && in.PropertyClass != product.BridgeClassResidential {
		return nil, errors.Invalid("second charges are only available for residential properties")
	}
	if !contains(product.BridgeProducts(in.PropertyClass, in.ChargeType), in.LoanProduct) {
		return nil, errors.NoEligibleProduct("please select a valid loan product")
	}

	// The first-charge balance only loads the LTV when the new loan
	// ranks behind it
	firstCharge := in.FirstChargeBalance
	if in.ChargeType == product.FirstCharge || in.ChargeType == "" {
		firstCharge = 0
	}

	fixed, err := solveBridgeRateType(t, in, ratetable.BridgeFixed, firstCharge)
	if err != nil {
		return nil, err
	}
	variable, err := solveBridgeRateType(t, in, ratetable.BridgeVariable, firstCharge)
	if err != nil {
		return nil, err
	}
	return &BridgeResult{Fixed: fixed, Variable: variable}, nil
}

func solveBridgeRateType(t *ratetable.BridgeTable, in types.BorrowerInput, rateType string, firstCharge float64) (*types.ColumnQuote, error) {
	var gross, ltv float64
	var specificNet float64

	if in.UseSpecificNet {
		if in.SpecificNetLoan <= 0 {
			return nil, errors.Invalid("please enter a valid positive number for specific net loan")
		}
		specificNet = in.SpecificNetLoan
		back, err := backSolveBridgeGross(t, in, rateType, firstCharge)
		if err != nil {
			return nil, err
		}
		gross, ltv = back.gross, back.ltv
	} else {
		if in.GrossLoan <= 0 {
			return nil, errors.Invalid("please enter a valid positive number for gross loan")
		}
		gross = in.GrossLoan
		ltv = (gross + firstCharge) / in.PropertyValue
	}

	limits, ok := t.LoanSize(in.LoanProduct)
	if !ok {
		return nil, errors.NoEligibleProduct("unknown bridging product " + in.LoanProduct)
	}
	if gross < limits.Min || gross > limits.Max {
		return nil, errors.Newf(errors.TypeNoEligibleProduct,
			"gross loan must be between £%.0f and £%.0f for this product", limits.Min, limits.Max)
	}

	coupon, tierLabel, err := product.BridgeRate(t, rateType, in.LoanProduct, ltv)
	if err != nil {
		return nil, err
	}

	monthlyRate := coupon
	if rateType == ratetable.BridgeVariable {
		monthlyRate = coupon + t.StandardBBR/12
	}

	feeAmount := gross * t.ArrangementFeePct
	totalInterest := gross * monthlyRate * float64(in.TermMonths)
	rolledInterest := gross * monthlyRate * float64(in.RolledMonths)
	serviced := in.TermMonths - in.RolledMonths
	if serviced < 0 {
		serviced = 0
	}
	var directDebit float64
	if serviced > 0 {
		directDebit = gross * monthlyRate
	}

	net := gross - feeAmount - rolledInterest
	if in.UseSpecificNet {
		net = specificNet
	}

	cap := capForLabel(t, tierLabel)
	return &types.ColumnQuote{
		ProductName:        fmt.Sprintf("%s, %s, %s", in.LoanProduct, rateType, tierLabel),
		FeePercent:         t.ArrangementFeePct,
		CouponRate:         coupon,
		FullRate:           monthlyRate,
		PayRate:            monthlyRate,
		IsTracker:          rateType == ratetable.BridgeVariable,
		GrossLoan:          gross,
		NetLoan:            net,
		FeeAmount:          feeAmount,
		RolledInterest:     rolledInterest,
		TotalInterest:      totalInterest,
		MonthlyDirectDebit: directDebit,
		RolledMonths:       in.RolledMonths,
		ServicedMonths:     serviced,
		TermMonths:         in.TermMonths,
		LTV:                ltv,
		MaxLTV:             cap,
	}, nil
}

type bridgeBackSolve struct {
	gross float64
	ltv   float64
}

// backSolveBridgeGross inverts net = gross x (1 - fee - monthlyRate x
// rolledMonths), iterating LTV tiers from lowest to highest loan cost
// and accepting the first self-consistent solution whose combined LTV
// fits that tier's cap.
func backSolveBridgeGross(t *ratetable.BridgeTable, in types.BorrowerInput, rateType string, firstCharge float64) (*bridgeBackSolve, error) {
	infeasible := false
	for i, tier := range t.LTVTiers {
		rate := t.Rate(rateType, in.LoanProduct, i)
		if rate == nil {
			continue
		}
		monthlyRate := *rate
		if rateType == ratetable.BridgeVariable {
			monthlyRate += t.StandardBBR / 12
		}
		deduction := t.ArrangementFeePct + monthlyRate*float64(in.RolledMonths)
		if deduction >= 1 {
			infeasible = true
			continue
		}
		gross := in.SpecificNetLoan / (1 - deduction)
		ltv := (gross + firstCharge) / in.PropertyValue
		if ltv <= tier.Cap+bridgeLtvEpsilon {
			return &bridgeBackSolve{gross: gross, ltv: ltv}, nil
		}
	}
	if infeasible {
		return nil, errors.InfeasibleFees(
			"fees and rolled interest alone would consume the whole loan; reduce the rolled months")
	}
	return nil, errors.NoEligibleProduct(
		"the net loan and property value combination results in an LTV that is too high for this product")
}

func capForLabel(t *ratetable.BridgeTable, label string) float64 {
	for _, tier := range t.LTVTiers {
		if tier.Label == label {
			return tier.Cap
		}
	}
	return 0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
