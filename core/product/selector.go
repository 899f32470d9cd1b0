// Package product selects the lending product applicable to a
// preliminary loan. Two strategies exist: Fusion picks the first
// loan-size band containing the preliminary gross; bridging picks the
// first ascending LTV tier whose cap covers the achieved LTV and whose
// rate is defined. Both are pure lookups with typed rejections.
package product

import (
	"fmt"

	"lender-quote/core/ratetable"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

// ltvEpsilon guards LTV-versus-cap comparisons against float boundary
// false rejections
const ltvEpsilon = 1e-9

// MatrixRate looks up the rate entry for (tier, product type) in a
// matrix table
func MatrixRate(t *ratetable.MatrixTable, tier types.Tier, productType string) (ratetable.ProductRate, error) {
	if tier.Excluded() {
		return ratetable.ProductRate{}, errors.Excluded("profile is outside the product's eligibility criteria")
	}
	p, ok := t.Product(tier, productType)
	if !ok {
		return ratetable.ProductRate{}, errors.NoEligibleProduct(
			fmt.Sprintf("no %s product for %s on the %s rate sheet", productType, tier, t.Name))
	}
	return p, nil
}

// FusionBand returns the first band for the property class whose
// [minLoan, maxLoan] range contains the preliminary gross loan
func FusionBand(t *ratetable.FusionTable, propertyClass string, preliminaryGross float64) (ratetable.FusionBand, error) {
	bands, ok := t.Bands[propertyClass]
	if !ok {
		return ratetable.FusionBand{}, errors.NoEligibleProduct(
			"no products available for the selected property type")
	}
	for _, band := range bands {
		if band.Contains(preliminaryGross) {
			return band, nil
		}
	}
	return ratetable.FusionBand{}, errors.NoEligibleProduct(
		fmt.Sprintf("a loan of £%.0f does not fall into any available product category", preliminaryGross))
}

// BridgeRate returns the monthly coupon for the lowest LTV tier whose
// cap covers the achieved LTV. Tiers with a nil rate are deliberately
// unsupported for the product and are skipped; running past the last
// tier means the LTV is too high.
func BridgeRate(t *ratetable.BridgeTable, rateType, loanProduct string, ltv float64) (float64, string, error) {
	for i, tier := range t.LTVTiers {
		if ltv > tier.Cap+ltvEpsilon {
			continue
		}
		if rate := t.Rate(rateType, loanProduct, i); rate != nil {
			return *rate, tier.Label, nil
		}
	}
	return 0, "", errors.NoEligibleProduct("LTV is too high for this product")
}

// BridgeLimits describes the supported envelope of a bridging product
// for display: its loan-size band and lowest/highest supported LTV tier
type BridgeLimits struct {
	Sizes  ratetable.Band
	MinLTV string
	MaxLTV string
}

// BridgeProductLimits summarises the envelope of one bridging product
func BridgeProductLimits(t *ratetable.BridgeTable, loanProduct string) (BridgeLimits, error) {
	sizes, ok := t.LoanSize(loanProduct)
	if !ok {
		return BridgeLimits{}, errors.NoEligibleProduct("unknown bridging product " + loanProduct)
	}
	limits := BridgeLimits{Sizes: sizes}
	for i, tier := range t.LTVTiers {
		if t.Rate(ratetable.BridgeFixed, loanProduct, i) == nil {
			continue
		}
		if limits.MinLTV == "" {
			limits.MinLTV = tier.Label
		}
		limits.MaxLTV = tier.Label
	}
	return limits, nil
}

// Bridging property classes and charge types
const (
	BridgeClassResidential = "Residential"
	BridgeClassCommercial  = "Commercial"

	FirstCharge  = "First Charge"
	SecondCharge = "Second Charge"
)

// BridgeProducts lists the bridging products offered for a property
// class and charge type, in display priority order
func BridgeProducts(propertyClass, chargeType string) []string {
	if chargeType == SecondCharge {
		return []string{ratetable.BridgeSecondCharge}
	}
	if propertyClass == BridgeClassCommercial {
		return []string{
			ratetable.BridgeSemiCommercial,
			ratetable.BridgeSemiCommercialLarge,
			ratetable.BridgeBTLPortfolio,
			ratetable.BridgeLightDevelopment,
		}
	}
	return []string{
		ratetable.BridgeSingleProperty,
		ratetable.BridgeLargeSingleProperty,
		ratetable.BridgeBTLPortfolio,
		ratetable.BridgeLightDevelopment,
	}
}
