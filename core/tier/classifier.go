// Package tier classifies a borrower/property risk profile into a
// discrete tier, or the Excluded sentinel when the profile is outside a
// product's eligibility envelope.
//
// Classification is a running maximum across independent risk
// dimensions, each a monotonic step function of its selected option.
// Adverse-credit sub-dimensions are folded in only when adverse credit
// is flagged. Unrecognized option strings contribute the lowest-risk
// level for their dimension — legacy labels ("Yes" vs "Yes (Tier 3)")
// have been renamed across rate-sheet revisions and an unknown value
// must never crash or silently escalate.
package tier

import (
	"lender-quote/core/types"
)

// Dimension is one independent risk dimension: an accessor into the
// flag record and the tier level each option contributes
type Dimension struct {
	Name   string
	Select func(f types.RiskFlags) string
	Levels map[string]int
}

func (d Dimension) level(f types.RiskFlags) int {
	if lvl, ok := d.Levels[d.Select(f)]; ok {
		return lvl
	}
	return 1
}

// Exclusion is a hard eligibility gate that short-circuits
// classification to Excluded regardless of other inputs
type Exclusion struct {
	Reason string
	Match  func(f types.RiskFlags) bool
}

// Ruleset is one variant's classification configuration
type Ruleset struct {
	Name string

	// MaxTier clamps the result (2 for two-tier products)
	MaxTier int

	Dimensions []Dimension

	// Adverse sub-dimensions apply only when adverse credit is flagged
	Adverse []Dimension

	Exclusions []Exclusion
}

// Classify maps a flag record to a tier. Total over well-formed input:
// it never fails, and unknown options resolve to tier 1 contributions.
func (r *Ruleset) Classify(f types.RiskFlags) types.Tier {
	if _, excluded := r.ExclusionReason(f); excluded {
		return types.TierExcluded
	}

	level := 1
	for _, d := range r.Dimensions {
		if l := d.level(f); l > level {
			level = l
		}
	}

	if f.AdverseCredit == "Yes" {
		for _, d := range r.Adverse {
			if l := d.level(f); l > level {
				level = l
			}
		}
	}

	if level > r.MaxTier {
		level = r.MaxTier
	}
	return types.Tier(level)
}

// ExclusionReason reports the first matching hard exclusion, if any
func (r *Ruleset) ExclusionReason(f types.RiskFlags) (string, bool) {
	for _, e := range r.Exclusions {
		if e.Match(f) {
			return e.Reason, true
		}
	}
	return "", false
}

func yes(level int) map[string]int {
	return map[string]int{"Yes": level}
}

// Residential is the three-tier BTL residential ruleset
var Residential = &Ruleset{
	Name:    "residential",
	MaxTier: 3,
	Dimensions: []Dimension{
		{
			Name:   "hmo",
			Select: func(f types.RiskFlags) string { return f.HMO },
			Levels: map[string]int{
				"No (Tier 1)": 1, "Up to 6 beds (Tier 2)": 2, "More than 6 beds (Tier 3)": 3,
				"No": 1, "Up to 6 beds": 2, "More than 6 beds": 3,
			},
		},
		{
			Name:   "mufb",
			Select: func(f types.RiskFlags) string { return f.MUFB },
			Levels: map[string]int{
				"No (Tier 1)": 1, "Up to 6 units (Tier 2)": 2, "Less than 30 units (Tier 3)": 3,
				"No": 1, "Up to 6 units": 2, "Less than 30 units": 3,
			},
		},
		{
			Name:   "expat",
			Select: func(f types.RiskFlags) string { return f.Expat },
			Levels: map[string]int{
				"No (Tier 1)": 1, "UK footprint (Tier 2)": 2, "Yes (Tier 3)": 3,
				"No": 1, "UK footprint": 2, "Yes": 3,
			},
		},
		{
			Name:   "holidayLet",
			Select: func(f types.RiskFlags) string { return f.HolidayLet },
			Levels: yes(3),
		},
		{
			Name:   "offshoreCompany",
			Select: func(f types.RiskFlags) string { return f.OffshoreCompany },
			Levels: yes(3),
		},
		{
			Name:   "flatAboveCommercial",
			Select: func(f types.RiskFlags) string { return f.FlatAboveCommercial },
			Levels: yes(2),
		},
		{
			Name:   "firstTimeLandlord",
			Select: func(f types.RiskFlags) string { return f.FirstTimeLandlord },
			Levels: yes(2),
		},
	},
	Adverse: []Dimension{
		{
			Name:   "mortgageArrears",
			Select: func(f types.RiskFlags) string { return f.MortgageArrears },
			Levels: map[string]int{"0 in 24": 1, "0 in 18": 2, "2 in 18, 0 in 6": 3},
		},
		{
			Name:   "unsecuredArrears",
			Select: func(f types.RiskFlags) string { return f.UnsecuredArrears },
			Levels: map[string]int{"0 in 24": 1, "0 in 12": 2, "2 in last 18": 3},
		},
		{
			Name:   "ccjDefault",
			Select: func(f types.RiskFlags) string { return f.CCJDefault },
			Levels: map[string]int{"0 in 24": 1, "0 in 18": 2, "2 in 18, 0 in 6": 3},
		},
		{
			Name:   "bankruptcy",
			Select: func(f types.RiskFlags) string { return f.Bankruptcy },
			Levels: map[string]int{"Never": 1, "Discharged >3yrs": 3, "All considered by referral": 3},
		},
	},
}

// Commercial is the two-tier commercial/semi-commercial ruleset
var Commercial = &Ruleset{
	Name:    "commercial",
	MaxTier: 2,
	Dimensions: []Dimension{
		{
			Name:   "hmo",
			Select: func(f types.RiskFlags) string { return f.HMO },
			Levels: map[string]int{
				"No (Tier 1)": 1, "Up to 12 beds (Tier 1)": 1, "More than 12 beds (Tier 2)": 2,
			},
		},
		{
			Name:   "mufb",
			Select: func(f types.RiskFlags) string { return f.MUFB },
			Levels: map[string]int{
				"No (Tier 1)": 1, "Up to 12 units (Tier 1)": 1, "More than 12 units (Tier 2)": 2,
			},
		},
		{
			Name:   "expat",
			Select: func(f types.RiskFlags) string { return f.Expat },
			Levels: map[string]int{"No (Tier 1)": 1, "Yes (Tier 2)": 2},
		},
		{
			Name:   "ownerOccupied",
			Select: func(f types.RiskFlags) string { return f.OwnerOccupied },
			Levels: yes(2),
		},
		{
			Name:   "developmentExit",
			Select: func(f types.RiskFlags) string { return f.DevelopmentExit },
			Levels: yes(2),
		},
		{
			Name:   "flatAboveCommercial",
			Select: func(f types.RiskFlags) string { return f.FlatAboveCommercial },
			Levels: yes(2),
		},
		{
			Name:   "firstTimeLandlord",
			Select: func(f types.RiskFlags) string { return f.FirstTimeLandlord },
			Levels: yes(2),
		},
		{
			Name:   "offshoreCompany",
			Select: func(f types.RiskFlags) string { return f.OffshoreCompany },
			Levels: yes(2),
		},
	},
	Adverse: []Dimension{
		{
			Name:   "mortgageArrears",
			Select: func(f types.RiskFlags) string { return f.MortgageArrears },
			Levels: map[string]int{"0 in 24": 1, "0 in 18": 1, "2 in 18, 0 in 6": 2, "Other, more recent": 2},
		},
		{
			Name:   "unsecuredArrears",
			Select: func(f types.RiskFlags) string { return f.UnsecuredArrears },
			Levels: map[string]int{"0 in 24": 1, "0 in 12": 1, "2 in last 18": 2, "Other, more recent": 2},
		},
		{
			Name:   "ccjDefault",
			Select: func(f types.RiskFlags) string { return f.CCJDefault },
			Levels: map[string]int{"0 in 24": 1, "0 in 18": 1, "2 in 18, 0 in 6": 2, "Other, more recent": 2},
		},
		{
			Name:   "bankruptcy",
			Select: func(f types.RiskFlags) string { return f.Bankruptcy },
			Levels: map[string]int{"Never": 1, "Discharged >3yrs": 1, "All considered by referral": 2},
		},
	},
}

// Prime is the two-tier prime ruleset. Prime hard-excludes holiday
// lets, first-time buyers, foreign nationals and any bankruptcy
// history.
var Prime = &Ruleset{
	Name:    "prime",
	MaxTier: 2,
	Exclusions: []Exclusion{
		{
			Reason: "holiday lets are not eligible for Prime products",
			Match:  func(f types.RiskFlags) bool { return f.HolidayLet == "Yes" },
		},
		{
			Reason: "first time buyers are not eligible for Prime products",
			Match:  func(f types.RiskFlags) bool { return f.FirstTimeBuyer == "Yes" },
		},
		{
			Reason: "bankruptcy history is not eligible for Prime products",
			Match:  func(f types.RiskFlags) bool { return f.Bankruptcy != "" && f.Bankruptcy != "Never" },
		},
		{
			Reason: "foreign nationals are not eligible for Prime products",
			Match:  func(f types.RiskFlags) bool { return f.Expat == "Foreign National" },
		},
	},
	Dimensions: []Dimension{
		{
			Name:   "hmo",
			Select: func(f types.RiskFlags) string { return f.HMO },
			Levels: map[string]int{"No": 1, "Up to 6 beds": 2},
		},
		{
			Name:   "mufb",
			Select: func(f types.RiskFlags) string { return f.MUFB },
			Levels: map[string]int{"No": 1, "Up to 6 units": 2},
		},
		{
			Name:   "expat",
			Select: func(f types.RiskFlags) string { return f.Expat },
			Levels: map[string]int{"No": 1, "UK footprint": 2},
		},
		{
			Name:   "firstTimeLandlord",
			Select: func(f types.RiskFlags) string { return f.FirstTimeLandlord },
			Levels: yes(2),
		},
		{
			Name:   "developmentExit",
			Select: func(f types.RiskFlags) string { return f.DevelopmentExit },
			Levels: yes(2),
		},
	},
	Adverse: []Dimension{
		{
			Name:   "mortgageArrears",
			Select: func(f types.RiskFlags) string { return f.MortgageArrears },
			Levels: map[string]int{"No": 1, "0 in 24": 1, "0 in 18": 2},
		},
		{
			Name:   "unsecuredArrears",
			Select: func(f types.RiskFlags) string { return f.UnsecuredArrears },
			Levels: map[string]int{"No": 1, "0 in 24": 1, "0 in 12": 2},
		},
		{
			Name:   "ccjDefault",
			Select: func(f types.RiskFlags) string { return f.CCJDefault },
			Levels: map[string]int{"No": 1, "0 in 24": 1, "0 in 18": 2},
		},
	},
}
