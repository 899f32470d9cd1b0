package solver

import (
	"fmt"

	"lender-quote/core/product"
	"lender-quote/core/ratetable"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

// SolveFusion computes a Fusion quote. The product band is selected by
// loan size, so inverse mode is a two-pass resolution: the first pass
// back-solves with the entry band's rate to estimate the gross loan and
// pick a band; the second recomputes with that band's actual rate and
// re-validates LTV and band fit before returning.
func SolveFusion(t *ratetable.FusionTable, in types.BorrowerInput) (*types.ColumnQuote, error) {
	if in.PropertyValue <= 0 {
		return nil, errors.Invalid("please enter a valid property value")
	}
	if in.RolledMonths < t.MinRolledMonths || in.RolledMonths > t.MaxRolledMonths {
		return nil, errors.Newf(errors.TypeInvalidInput,
			"months to be rolled must be between %d and %d", t.MinRolledMonths, t.MaxRolledMonths)
	}
	if in.DeferredRate < 0 || in.DeferredRate > t.MaxDeferred {
		return nil, errors.Newf(errors.TypeInvalidInput,
			"deferred interest must be between 0%% and %.2f%%", t.MaxDeferred*100)
	}

	deferredFactor := in.DeferredRate / 12 * float64(t.TermMonths)
	rolled := float64(in.RolledMonths)

	// Pass one: establish the preliminary gross loan used for band
	// selection
	var preliminary float64
	if in.UseSpecificNet {
		if in.SpecificNetLoan <= 0 {
			return nil, errors.Invalid("please enter a valid specific net loan amount")
		}
		approx := entryRate(t, in.PropertyClass)
		rolledFactor := (approx - in.DeferredRate + t.BBR) / 12 * rolled
		denominator := 1 - t.ArrangementFeePct - rolledFactor - deferredFactor
		if denominator <= 0 {
			return nil, errors.InfeasibleFees("the combination of fees and costs is not feasible")
		}
		preliminary = in.SpecificNetLoan / denominator
	} else {
		if in.GrossLoan <= 0 {
			return nil, errors.Newf(errors.TypeInvalidInput,
				"please enter a valid gross loan amount; the minimum is £%.0f", t.MinLoan)
		}
		if in.GrossLoan < t.MinLoan {
			return nil, errors.Newf(errors.TypeInvalidInput,
				"the minimum loan amount is £%.0f", t.MinLoan)
		}
		preliminary = in.GrossLoan
	}

	band, err := product.FusionBand(t, in.PropertyClass, preliminary)
	if err != nil {
		return nil, err
	}

	// Pass two: recompute with the selected band's actual rate
	var gross float64
	if in.UseSpecificNet {
		rolledFactor := (band.Rate - in.DeferredRate + t.BBR) / 12 * rolled
		denominator := 1 - t.ArrangementFeePct - rolledFactor - deferredFactor
		if denominator <= 0 {
			return nil, errors.InfeasibleFees(
				"the combination of fees and costs is not feasible with this product's rate")
		}
		gross = in.SpecificNetLoan / denominator
	} else {
		gross = in.GrossLoan
	}

	maxLTV := t.LTVCap(in.PropertyClass)
	ltv := gross / in.PropertyValue
	if ltv > maxLTV+ltvEpsilon {
		maxLoan := in.PropertyValue * maxLTV
		return nil, errors.LtvExceeded(fmt.Sprintf(
			"a loan of £%.0f exceeds the maximum LTV of %.0f%% for this property type; the maximum loan is £%.0f",
			gross, maxLTV*100, maxLoan), maxLoan)
	}
	if !band.Contains(gross) {
		return nil, errors.NoEligibleProduct(
			"after applying LTV limits, the loan amount no longer fits the selected product category")
	}

	fullRate := band.Rate + t.BBR
	payRate := band.Rate - in.DeferredRate + t.BBR
	feeAmount := gross * t.ArrangementFeePct
	rolledCost := gross * (fullRate - in.DeferredRate) / 12 * rolled
	deferredCost := gross * in.DeferredRate / 12 * float64(t.TermMonths)

	return &types.ColumnQuote{
		ProductName:        fmt.Sprintf("%s Fusion %s", in.PropertyClass, band.Name),
		FeePercent:         t.ArrangementFeePct,
		CouponRate:         band.Rate,
		FullRate:           fullRate,
		PayRate:            payRate,
		DeferredCap:        in.DeferredRate,
		IsTracker:          true,
		GrossLoan:          gross,
		NetLoan:            gross - feeAmount - rolledCost - deferredCost,
		FeeAmount:          feeAmount,
		RolledInterest:     rolledCost,
		DeferredInterest:   deferredCost,
		TotalInterest:      gross * fullRate / 12 * float64(t.TermMonths),
		MonthlyDirectDebit: gross * payRate / 12,
		RolledMonths:       in.RolledMonths,
		ServicedMonths:     t.TermMonths - in.RolledMonths,
		TermMonths:         t.TermMonths,
		LTV:                ltv,
		MaxLTV:             maxLTV,
	}, nil
}

// entryRate is the approximate rate for the first back-solve pass: the
// entry band of the property class, or a conservative default when the
// class is unknown (band selection will reject it properly afterwards)
func entryRate(t *ratetable.FusionTable, propertyClass string) float64 {
	if bands, ok := t.Bands[propertyClass]; ok && len(bands) > 0 {
		return bands[0].Rate
	}
	return 0.05
}
