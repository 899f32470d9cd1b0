package solver

import (
	"math"

	"lender-quote/core/ratetable"
	"lender-quote/core/types"
)

// RentBasis selects how the stressed-rent affordability window is
// built for a matrix variant
type RentBasis int

const (
	// RentOverServicedMonths tests rent over the term against interest
	// over the months left after the rolled period (Residential)
	RentOverServicedMonths RentBasis = iota

	// RentOverFullTerm tests rent over the term against interest over
	// the whole term (Prime)
	RentOverFullTerm

	// RentAnnual tests one year of rent against one year of stressed
	// interest (Commercial)
	RentAnnual
)

// InverseBasis selects which rate the net-to-gross back-solve loads
// onto the rolled months
type InverseBasis int

const (
	// InverseStressedWithDeferred rolls up at the deferred-adjusted
	// stress rate and adds the deferred cap (Residential)
	InverseStressedWithDeferred InverseBasis = iota

	// InversePayRate rolls up at the display pay rate with no deferred
	// uplift (Commercial)
	InversePayRate

	// InverseFeeOnly divides the net by (1 - fee) alone (Prime)
	InverseFeeOnly
)

// MatrixParams parameterizes the shared matrix solver for one variant.
// The five calculators are the same shape of logic; everything that
// differs between them lives here or in the rate table.
type MatrixParams struct {
	Variant      types.Variant
	Table        *ratetable.MatrixTable
	RentBasis    RentBasis
	InverseBasis InverseBasis

	// MaxLTV returns the applicable LTV cap for a tier and flag record
	MaxLTV func(tier types.Tier, flags types.RiskFlags) float64
}

// SolveMatrix computes the full fee-column matrix for a matrix variant:
// one ColumnQuote per offered fee column, the best column by gross
// loan, and the basic (no rolled, no deferred) gross figures.
//
// Loans below the product minimum or capped at the maximum are soft
// flags on the column, not rejections: the caller warns rather than
// blocks.
func SolveMatrix(p MatrixParams, tier types.Tier, rate ratetable.ProductRate, in types.BorrowerInput) *types.QuoteResult {
	result := &types.QuoteResult{
		Variant:     p.Variant,
		Tier:        tier.String(),
		ProductType: in.ProductType,
		StandardBBR: p.Table.StandardBBR,
		CurrentMVR:  p.Table.CurrentMVR,
	}

	for _, col := range p.Table.FeeColumns {
		q := p.solveColumn(tier, rate, in, col)
		if q == nil {
			continue
		}
		result.Columns = append(result.Columns, *q)

		if b := p.basicGross(tier, rate, in, col); b != nil {
			result.Basic = append(result.Basic, *b)
		}
	}

	result.Best = bestColumn(result.Columns, in.PropertyValue)
	return result
}

// solveColumn is the per-fee-column forward/inverse calculation
func (p MatrixParams) solveColumn(tier types.Tier, rate ratetable.ProductRate, in types.BorrowerInput, col string) *types.ColumnQuote {
	base, ok := rate.Rate(col)
	if !ok {
		return nil
	}

	table := p.Table
	feePct := feePercent(col)
	isTracker := rate.IsMargin

	displayRate := base
	if isTracker {
		displayRate = base + table.StandardBBR
	}

	deferredCap := table.DeferredCap(isTracker)
	payRate := math.Max(displayRate-deferredCap, 0)

	termMonths := table.Term(in.ProductType)
	rolledMonths := table.MaxRolledMonths
	if rolledMonths > termMonths {
		rolledMonths = termMonths
	}

	// Affordability is always tested against the stressed rate, never
	// the display rate
	stressRate := displayRate
	if isTracker {
		stressRate = base + table.StressBBR
	}
	if table.MinStressRate > 0 && stressRate < table.MinStressRate {
		stressRate = table.MinStressRate
	}
	stressAdj := math.Max(stressRate-deferredCap, minStressAdj)

	maxLTV := p.MaxLTV(tier, in.Risk)
	grossLTV := math.Inf(1)
	if in.PropertyValue > 0 {
		grossLTV = in.PropertyValue * maxLTV
	}

	grossRent := math.Inf(1)
	if in.MonthlyRent > 0 {
		minICR := table.MinICR(isTracker)
		rentMonths, servicedBase := p.rentWindow(termMonths, rolledMonths)
		annualised := in.MonthlyRent * float64(rentMonths)
		grossRent = annualised / (minICR * (stressAdj / 12) * float64(servicedBase))
	}

	eligible := minOf(grossLTV, grossRent, table.MaxLoan)
	if in.UseSpecificNet && in.SpecificNetLoan > 0 {
		grossFromNet := p.grossFromNet(in.SpecificNetLoan, feePct, stressAdj, displayRate, deferredCap, rolledMonths)
		eligible = math.Min(eligible, grossFromNet)
	}

	feeAmount := eligible * feePct
	rolled := eligible * (displayRate - deferredCap) / 12 * float64(rolledMonths)
	deferred := eligible * deferredCap / 12 * float64(termMonths)

	var ltv float64
	if in.PropertyValue > 0 {
		ltv = eligible / in.PropertyValue
	}

	return &types.ColumnQuote{
		FeeColumn:          col,
		FeePercent:         feePct,
		CouponRate:         base,
		FullRate:           displayRate,
		PayRate:            payRate,
		DeferredCap:        deferredCap,
		IsTracker:          isTracker,
		GrossLoan:          eligible,
		NetLoan:            eligible - feeAmount - rolled - deferred,
		FeeAmount:          feeAmount,
		RolledInterest:     rolled,
		DeferredInterest:   deferred,
		TotalInterest:      eligible * displayRate / 12 * float64(termMonths),
		MonthlyDirectDebit: eligible * payRate / 12,
		RolledMonths:       rolledMonths,
		ServicedMonths:     termMonths - rolledMonths,
		TermMonths:         termMonths,
		LTV:                ltv,
		MaxLTV:             maxLTV,
		BelowMinLoan:       eligible < table.MinLoan-softEpsilon,
		CappedAtMax:        math.Abs(eligible-table.MaxLoan) < softEpsilon,
	}
}

// rentWindow returns (months of rent, months of serviced interest) for
// the affordability test
func (p MatrixParams) rentWindow(termMonths, rolledMonths int) (int, int) {
	switch p.RentBasis {
	case RentAnnual:
		return 12, 12
	case RentOverFullTerm:
		return termMonths, termMonths
	default:
		serviced := termMonths - rolledMonths
		if serviced < 1 {
			serviced = 1
		}
		return termMonths, serviced
	}
}

// grossFromNet inverts net = gross x (1 - fee - rolledFactor -
// deferredFactor) for the variant's inverse basis. The matrix forms
// multiply the net upward, so the denominator is (1 - fee) and cannot
// go non-positive for any offered fee column.
func (p MatrixParams) grossFromNet(net, feePct, stressAdj, displayRate, deferredCap float64, rolledMonths int) float64 {
	switch p.InverseBasis {
	case InversePayRate:
		rolledFactor := (displayRate - deferredCap) * (float64(rolledMonths) / 12)
		return net * (1 + rolledFactor) / (1 - feePct)
	case InverseFeeOnly:
		return net / (1 - feePct)
	default:
		rolledFactor := stressAdj * (float64(rolledMonths) / 12)
		return net * (1 + rolledFactor + deferredCap) / (1 - feePct)
	}
}

// basicGross is the no-rolled, no-deferred gross figure per column:
// the headline number an underwriter starts from
func (p MatrixParams) basicGross(tier types.Tier, rate ratetable.ProductRate, in types.BorrowerInput, col string) *types.BasicGross {
	base, ok := rate.Rate(col)
	if !ok {
		return nil
	}

	table := p.Table
	isTracker := rate.IsMargin

	displayRate := base
	if isTracker {
		displayRate = base + table.StandardBBR
	}
	stressRate := displayRate
	if isTracker {
		stressRate = base + table.StressBBR
	}
	if table.MinStressRate > 0 && stressRate < table.MinStressRate {
		stressRate = table.MinStressRate
	}
	stressAdj := math.Max(stressRate, minStressAdj)

	maxLTV := p.MaxLTV(tier, in.Risk)
	grossLTV := math.Inf(1)
	if in.PropertyValue > 0 {
		grossLTV = in.PropertyValue * maxLTV
	}

	grossRent := math.Inf(1)
	if in.MonthlyRent > 0 {
		minICR := table.MinICR(isTracker)
		grossRent = in.MonthlyRent * 12 / (minICR * stressAdj)
	}

	eligible := minOf(grossLTV, grossRent, table.MaxLoan)
	if p.InverseBasis == InverseFeeOnly && in.UseSpecificNet && in.SpecificNetLoan > 0 {
		// Prime carries no rolled or deferred interest, so its basic
		// figure matches the main column including the net target
		eligible = math.Min(eligible, in.SpecificNetLoan/(1-feePercent(col)))
	}

	b := &types.BasicGross{FeeColumn: col, GrossLoan: eligible}
	if in.PropertyValue > 0 {
		b.LTVPct = roundPct(eligible / in.PropertyValue)
	}
	return b
}

// bestColumn picks the fee column with the highest gross loan
func bestColumn(columns []types.ColumnQuote, propertyValue float64) *types.BestColumn {
	var best *types.BestColumn
	for _, q := range columns {
		if best != nil && q.GrossLoan <= best.GrossLoan {
			continue
		}
		b := &types.BestColumn{
			FeeColumn: q.FeeColumn,
			GrossLoan: q.GrossLoan,
			NetLoan:   q.NetLoan,
		}
		if propertyValue > 0 {
			b.GrossLTVPct = roundPct(q.GrossLoan / propertyValue)
			b.NetLTVPct = roundPct(q.NetLoan / propertyValue)
		}
		best = b
	}
	return best
}
