// Package ratetable holds the static lending rate data consumed by the
// calculators: coupon rates by tier/product/fee-column, Fusion loan-size
// bands, bridging LTV-tier rate grids, LTV caps, stress margins, ICR
// minimums, term lengths, revert-rate offsets and ERC schedules.
//
// Tables are immutable configuration: loaded once, validated, injected
// into the engine, never mutated. There is no ambient global state.
package ratetable

import (
	"math"

	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

// ProductRate maps fee columns (percentage strings, e.g. "6", "4") to a
// coupon rate. IsMargin marks tracker products whose rate is added to a
// floating base rate rather than being an absolute fixed rate.
type ProductRate struct {
	Columns  map[string]float64
	IsMargin bool
}

// Rate returns the coupon for a fee column, or false when the column is
// not offered for this product
func (p ProductRate) Rate(feeColumn string) (float64, bool) {
	r, ok := p.Columns[feeColumn]
	return r, ok
}

// MatrixTable is the rate sheet shape shared by the Residential,
// Commercial and Prime BTL calculators: coupon rates keyed by
// (tier, product type, fee column) plus loan bounds and stress data.
type MatrixTable struct {
	Name string

	Tiers        []types.Tier
	Products     map[types.Tier]map[string]ProductRate
	ProductTypes []string
	FeeColumns   []string

	MinICRFix     float64
	MinICRTracker float64

	MinLoan float64
	MaxLoan float64

	StandardBBR float64
	StressBBR   float64

	// MinStressRate floors the stress rate when positive (Prime)
	MinStressRate float64

	TermMonths     map[string]int
	TotalTermYears int

	// MaxRolledMonths and the deferred caps are zero for variants that
	// do not roll or defer interest (Prime)
	MaxRolledMonths    int
	DeferredCapFix     float64
	DeferredCapTracker float64

	RevertRateAdd map[types.Tier]float64
	ERC           map[string][]string

	CurrentMVR float64
}

// Product returns the rate entry for a tier and product type
func (t *MatrixTable) Product(tier types.Tier, productType string) (ProductRate, bool) {
	products, ok := t.Products[tier]
	if !ok {
		return ProductRate{}, false
	}
	p, ok := products[productType]
	return p, ok
}

// Term returns the initial product term in months, defaulting to 24 for
// unknown product types
func (t *MatrixTable) Term(productType string) int {
	if m, ok := t.TermMonths[productType]; ok {
		return m
	}
	return 24
}

// MinICR returns the minimum interest coverage ratio for a product class
func (t *MatrixTable) MinICR(isTracker bool) float64 {
	if isTracker {
		return t.MinICRTracker
	}
	return t.MinICRFix
}

// DeferredCap returns the maximum deferrable rate slice for a product class
func (t *MatrixTable) DeferredCap(isTracker bool) float64 {
	if isTracker {
		return t.DeferredCapTracker
	}
	return t.DeferredCapFix
}

// Validate checks the table invariants: rates finite and non-negative,
// minLoan <= maxLoan, ICR minimums at least 1
func (t *MatrixTable) Validate() error {
	if t.MinLoan > t.MaxLoan {
		return errors.Config(t.Name + ": minLoan exceeds maxLoan")
	}
	if t.MinICRFix < 1 || t.MinICRTracker < 1 {
		return errors.Config(t.Name + ": minimum ICR below 100%")
	}
	for tier, products := range t.Products {
		for productType, p := range products {
			for col, rate := range p.Columns {
				if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
					return errors.Newf(errors.TypeConfig,
						"%s: bad rate for %s / %s / %s%% fee", t.Name, tier, productType, col)
				}
			}
		}
	}
	return nil
}

// FusionBand is one Fusion product band selected by loan size
type FusionBand struct {
	Name    string
	Rate    float64
	MinLoan float64
	MaxLoan float64
}

// Contains reports whether a gross loan falls inside the band
func (b FusionBand) Contains(gross float64) bool {
	return gross >= b.MinLoan && gross <= b.MaxLoan
}

// FusionTable is the Fusion calculator rate sheet: product bands per
// property class, a single arrangement fee, and per-class LTV caps.
type FusionTable struct {
	BBR               float64
	ArrangementFeePct float64
	TermMonths        int

	// Bands are iterated in priority order; first size match wins
	Bands   map[string][]FusionBand
	LTVCaps map[string]float64

	MinLoan float64

	MinRolledMonths int
	MaxRolledMonths int
	MaxDeferred     float64

	ERC string
}

// LTVCap returns the cap for a property class, defaulting to 75%
func (t *FusionTable) LTVCap(propertyClass string) float64 {
	if cap, ok := t.LTVCaps[propertyClass]; ok {
		return cap
	}
	return 0.75
}

// Validate checks the Fusion table invariants
func (t *FusionTable) Validate() error {
	for class, cap := range t.LTVCaps {
		if cap <= 0 || cap > 1 {
			return errors.Config("fusion: LTV cap out of (0,1] for " + class)
		}
	}
	for class, bands := range t.Bands {
		for _, b := range bands {
			if b.MinLoan > b.MaxLoan {
				return errors.Config("fusion: band " + b.Name + " for " + class + " has minLoan > maxLoan")
			}
			if b.Rate < 0 || math.IsNaN(b.Rate) || math.IsInf(b.Rate, 0) {
				return errors.Config("fusion: bad rate in band " + b.Name)
			}
		}
	}
	return nil
}

// Bridging rate types. Variable margins are added to BBR/12 to obtain
// the full monthly rate; fixed coupons are already monthly.
const (
	BridgeFixed    = "Fixed Rate"
	BridgeVariable = "Variable Rate"
)

// BridgeLTVTier is one ascending LTV band of the bridging rate grid
type BridgeLTVTier struct {
	Label string
	Cap   float64
}

// Band is an inclusive loan-size range
type Band struct {
	Min float64
	Max float64
}

// BridgeTable is the bridging calculator rate sheet: monthly coupon
// rates by (rate type, product, LTV tier). A nil rate marks an LTV tier
// deliberately unsupported for that product.
type BridgeTable struct {
	ArrangementFeePct float64
	StandardBBR       float64

	MinTermMonths int
	MaxTermMonths int

	LTVTiers []BridgeLTVTier

	// Rates[rateType][product][i] aligns with LTVTiers[i]
	Rates map[string]map[string][]*float64

	LoanSizes map[string]Band
}

// Rate returns the monthly coupon for a product at LTV tier index i
func (t *BridgeTable) Rate(rateType, product string, i int) *float64 {
	products, ok := t.Rates[rateType]
	if !ok {
		return nil
	}
	rates, ok := products[product]
	if !ok || i < 0 || i >= len(rates) {
		return nil
	}
	return rates[i]
}

// LoanSize returns the size band for a product
func (t *BridgeTable) LoanSize(product string) (Band, bool) {
	b, ok := t.LoanSizes[product]
	return b, ok
}

// Validate checks the bridging table invariants
func (t *BridgeTable) Validate() error {
	if t.MinTermMonths <= 0 || t.MinTermMonths > t.MaxTermMonths {
		return errors.Config("bridging: bad term bounds")
	}
	for rateType, products := range t.Rates {
		for product, rates := range products {
			if len(rates) != len(t.LTVTiers) {
				return errors.Config("bridging: rate grid misaligned for " + rateType + " / " + product)
			}
			for _, r := range rates {
				if r != nil && (*r < 0 || math.IsNaN(*r) || math.IsInf(*r, 0)) {
					return errors.Config("bridging: bad rate for " + product)
				}
			}
		}
	}
	for product, band := range t.LoanSizes {
		if band.Min > band.Max {
			return errors.Config("bridging: min exceeds max loan size for " + product)
		}
	}
	return nil
}

// Tables bundles every variant's rate data for injection into the engine
type Tables struct {
	Residential    *MatrixTable
	Commercial     *MatrixTable
	SemiCommercial *MatrixTable
	Prime          *MatrixTable
	Fusion         *FusionTable
	Bridging       *BridgeTable
}

// Validate validates every table in the bundle
func (t *Tables) Validate() error {
	for _, m := range []*MatrixTable{t.Residential, t.Commercial, t.SemiCommercial, t.Prime} {
		if m == nil {
			return errors.Config("missing matrix rate table")
		}
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if t.Fusion == nil || t.Bridging == nil {
		return errors.Config("missing fusion or bridging rate table")
	}
	if err := t.Fusion.Validate(); err != nil {
		return err
	}
	return t.Bridging.Validate()
}

func ptr(v float64) *float64 { return &v }
