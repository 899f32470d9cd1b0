package tier

import (
	"testing"

	"lender-quote/core/types"
)

// TestResidentialRunningMax proves the tier is the maximum across
// dimensions, not a sum
func TestResidentialRunningMax(t *testing.T) {
	f := types.RiskFlags{
		HMO:                 "Up to 6 beds (Tier 2)",
		FlatAboveCommercial: "Yes",
		FirstTimeLandlord:   "Yes",
	}
	if got := Residential.Classify(f); got != types.Tier2 {
		t.Errorf("three tier-2 flags should classify as Tier 2, got %s", got)
	}

	f.HolidayLet = "Yes"
	if got := Residential.Classify(f); got != types.Tier3 {
		t.Errorf("adding a tier-3 flag should escalate to Tier 3, got %s", got)
	}
}

// TestUnknownOptionDefaultsToTierOne proves an unrecognized option
// string contributes the lowest-risk level rather than failing or
// escalating
func TestUnknownOptionDefaultsToTierOne(t *testing.T) {
	f := types.RiskFlags{
		HMO:   "a label from a future rate sheet",
		MUFB:  "???",
		Expat: "",
	}
	if got := Residential.Classify(f); got != types.Tier1 {
		t.Errorf("unknown options should classify as Tier 1, got %s", got)
	}
}

// TestLegacyAndCurrentLabelsAgree proves renamed option labels map to
// the same level as their older spellings
func TestLegacyAndCurrentLabelsAgree(t *testing.T) {
	old := Residential.Classify(types.RiskFlags{HMO: "Up to 6 beds (Tier 2)"})
	current := Residential.Classify(types.RiskFlags{HMO: "Up to 6 beds"})
	if old != current {
		t.Errorf("legacy label classified %s, current label %s", old, current)
	}
}

// TestAdverseDimensionsGatedByFlag proves adverse-credit sub-dimensions
// only count when adverse credit is flagged
func TestAdverseDimensionsGatedByFlag(t *testing.T) {
	f := types.RiskFlags{
		MortgageArrears: "2 in 18, 0 in 6",
	}
	if got := Residential.Classify(f); got != types.Tier1 {
		t.Errorf("arrears without the adverse flag should be ignored, got %s", got)
	}

	f.AdverseCredit = "Yes"
	if got := Residential.Classify(f); got != types.Tier3 {
		t.Errorf("flagged arrears should classify as Tier 3, got %s", got)
	}
}

// TestTierMonotonicity proves adding a risk flag never lowers the tier
func TestTierMonotonicity(t *testing.T) {
	base := types.RiskFlags{HMO: "Up to 6 beds (Tier 2)"}
	baseline := Residential.Classify(base)

	escalations := []types.RiskFlags{
		{HMO: "Up to 6 beds (Tier 2)", FlatAboveCommercial: "Yes"},
		{HMO: "Up to 6 beds (Tier 2)", Expat: "Yes (Tier 3)"},
		{HMO: "Up to 6 beds (Tier 2)", OffshoreCompany: "Yes"},
		{HMO: "Up to 6 beds (Tier 2)", AdverseCredit: "Yes", Bankruptcy: "Discharged >3yrs"},
	}
	for i, f := range escalations {
		if got := Residential.Classify(f); got < baseline {
			t.Errorf("case %d: adding a risk flag lowered the tier from %s to %s", i, baseline, got)
		}
	}
}

// TestCommercialClampsAtTierTwo proves the two-tier products never
// classify above their maximum
func TestCommercialClampsAtTierTwo(t *testing.T) {
	f := types.RiskFlags{
		HMO:             "More than 12 beds (Tier 2)",
		OwnerOccupied:   "Yes",
		DevelopmentExit: "Yes",
		AdverseCredit:   "Yes",
		Bankruptcy:      "All considered by referral",
	}
	if got := Commercial.Classify(f); got != types.Tier2 {
		t.Errorf("commercial should clamp at Tier 2, got %s", got)
	}
}

// TestPrimeExclusions proves the hard eligibility gates short-circuit
// classification to Excluded
func TestPrimeExclusions(t *testing.T) {
	cases := []struct {
		name  string
		flags types.RiskFlags
	}{
		{"holiday let", types.RiskFlags{HolidayLet: "Yes"}},
		{"first time buyer", types.RiskFlags{FirstTimeBuyer: "Yes"}},
		{"bankruptcy history", types.RiskFlags{Bankruptcy: "Discharged >3yrs"}},
		{"foreign national", types.RiskFlags{Expat: "Foreign National"}},
	}
	for _, tc := range cases {
		got := Prime.Classify(tc.flags)
		if !got.Excluded() {
			t.Errorf("%s: expected Excluded, got %s", tc.name, got)
		}
		if reason, ok := Prime.ExclusionReason(tc.flags); !ok || reason == "" {
			t.Errorf("%s: expected an exclusion reason", tc.name)
		}
	}
}

// TestPrimeBankruptcyNeverIsEligible proves the bankruptcy gate only
// fires on an actual history
func TestPrimeBankruptcyNeverIsEligible(t *testing.T) {
	for _, v := range []string{"", "Never"} {
		if got := Prime.Classify(types.RiskFlags{Bankruptcy: v}); got.Excluded() {
			t.Errorf("bankruptcy %q should not exclude", v)
		}
	}
}
