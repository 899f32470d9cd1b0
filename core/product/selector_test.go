package product

import (
	"testing"

	"lender-quote/core/ratetable"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

// TestFusionBandBoundaries proves band selection at the exact size
// boundary and in the gap between bands
func TestFusionBandBoundaries(t *testing.T) {
	tab := ratetable.Default().Fusion

	band, err := FusionBand(tab, ratetable.FusionResidential, 3000000)
	if err != nil {
		t.Fatalf("3,000,000 should select a band: %v", err)
	}
	if band.Name != "Standard" {
		t.Errorf("3,000,000 selected %q, want Standard", band.Name)
	}

	band, err = FusionBand(tab, ratetable.FusionResidential, 3000001)
	if err != nil {
		t.Fatalf("3,000,001 should select a band: %v", err)
	}
	if band.Name != "Large" {
		t.Errorf("3,000,001 selected %q, want Large", band.Name)
	}

	if _, err := FusionBand(tab, ratetable.FusionResidential, 3000000.5); err == nil {
		t.Error("a loan in the gap between bands should be rejected")
	}
}

// TestFusionBandUnknownClass proves an unknown property class is a
// typed rejection
func TestFusionBandUnknownClass(t *testing.T) {
	tab := ratetable.Default().Fusion
	_, err := FusionBand(tab, "Warehouse", 500000)
	if !errors.IsType(err, errors.TypeNoEligibleProduct) {
		t.Errorf("expected NO_ELIGIBLE_PRODUCT, got %v", err)
	}
}

// TestBridgeRateSkipsUnsupportedTiers proves a nil tier rate means the
// tier is unavailable for the product, not zero-priced
func TestBridgeRateSkipsUnsupportedTiers(t *testing.T) {
	tab := ratetable.Default().Bridging

	// 2nd charge caps out at 70% LTV
	_, label, err := BridgeRate(tab, ratetable.BridgeFixed, ratetable.BridgeSecondCharge, 0.65)
	if err != nil {
		t.Fatalf("65%% LTV should be supported: %v", err)
	}
	if label != "70% LTV" {
		t.Errorf("65%% LTV selected tier %q, want 70%% LTV", label)
	}

	_, _, err = BridgeRate(tab, ratetable.BridgeFixed, ratetable.BridgeSecondCharge, 0.72)
	if !errors.IsType(err, errors.TypeNoEligibleProduct) {
		t.Errorf("72%% LTV on 2nd charge should be rejected, got %v", err)
	}
}

// TestBridgeRateBoundaryTolerance proves an LTV sitting exactly on a
// cap is not pushed to the next tier by float drift
func TestBridgeRateBoundaryTolerance(t *testing.T) {
	tab := ratetable.Default().Bridging
	ltv := (600000.0 + 0.0000001) / 1000000.0

	_, label, err := BridgeRate(tab, ratetable.BridgeFixed, ratetable.BridgeSingleProperty, ltv)
	if err != nil {
		t.Fatalf("boundary LTV rejected: %v", err)
	}
	if label != "60% LTV" {
		t.Errorf("boundary LTV selected tier %q, want 60%% LTV", label)
	}
}

// TestMatrixRateExcludedTier proves an excluded profile never reaches a
// rate lookup
func TestMatrixRateExcludedTier(t *testing.T) {
	tab := ratetable.Default().Prime
	_, err := MatrixRate(tab, types.TierExcluded, "2yr Fix")
	if !errors.IsType(err, errors.TypeExcluded) {
		t.Errorf("expected EXCLUDED, got %v", err)
	}
}

// TestMatrixRateMissingProduct proves a product type absent from the
// sheet is a typed rejection
func TestMatrixRateMissingProduct(t *testing.T) {
	tab := ratetable.Default().Commercial
	_, err := MatrixRate(tab, types.Tier1, "10yr Fix")
	if !errors.IsType(err, errors.TypeNoEligibleProduct) {
		t.Errorf("expected NO_ELIGIBLE_PRODUCT, got %v", err)
	}
}

// TestBridgeProductLimits proves the envelope summary reflects the rate
// grid
func TestBridgeProductLimits(t *testing.T) {
	tab := ratetable.Default().Bridging
	limits, err := BridgeProductLimits(tab, ratetable.BridgeSecondCharge)
	if err != nil {
		t.Fatalf("limits lookup failed: %v", err)
	}
	if limits.MaxLTV != "70% LTV" {
		t.Errorf("2nd charge max LTV = %q, want 70%% LTV", limits.MaxLTV)
	}
}

// TestBridgeProductsByChargeType proves second charges offer exactly
// one product
func TestBridgeProductsByChargeType(t *testing.T) {
	products := BridgeProducts(BridgeClassResidential, SecondCharge)
	if len(products) != 1 || products[0] != ratetable.BridgeSecondCharge {
		t.Errorf("second charge products = %v", products)
	}
}
