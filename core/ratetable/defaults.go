package ratetable

import (
	"lender-quote/core/types"
)

// Default returns the compiled-in rate tables for all calculators.
// Each call returns a fresh bundle so callers can apply overrides
// without affecting others.
func Default() *Tables {
	return &Tables{
		Residential:    defaultResidential(),
		Commercial:     defaultCommercial(),
		SemiCommercial: defaultSemiCommercial(),
		Prime:          defaultPrime(),
		Fusion:         defaultFusion(),
		Bridging:       defaultBridging(),
	}
}

func defaultResidential() *MatrixTable {
	return &MatrixTable{
		Name:         "residential",
		Tiers:        []types.Tier{types.Tier1, types.Tier2, types.Tier3},
		ProductTypes: []string{"2yr Fix", "3yr Fix", "2yr Tracker"},
		FeeColumns:   []string{"6", "4", "3", "2"},
		Products: map[types.Tier]map[string]ProductRate{
			types.Tier1: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0589, "4": 0.0679, "3": 0.0739, "2": 0.0789}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0639, "4": 0.0709, "3": 0.0746, "2": 0.0779}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0159, "4": 0.0259, "3": 0.0314, "2": 0.0364}, IsMargin: true},
			},
			types.Tier2: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0639, "4": 0.0729, "3": 0.0789, "2": 0.0839}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0689, "4": 0.0759, "3": 0.0796, "2": 0.0829}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0209, "4": 0.0309, "3": 0.0364, "2": 0.0414}, IsMargin: true},
			},
			types.Tier3: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0679, "4": 0.0769, "3": 0.0829, "2": 0.0879}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0729, "4": 0.0799, "3": 0.0836, "2": 0.0869}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0239, "4": 0.0339, "3": 0.0394, "2": 0.0444}, IsMargin: true},
			},
		},
		MinICRFix:          1.25,
		MinICRTracker:      1.30,
		MinLoan:            150000,
		MaxLoan:            3000000,
		StandardBBR:        0.04,
		StressBBR:          0.0425,
		TermMonths:         map[string]int{"2yr Fix": 24, "3yr Fix": 36, "2yr Tracker": 24},
		TotalTermYears:     10,
		MaxRolledMonths:    9,
		DeferredCapFix:     0.0125,
		DeferredCapTracker: 0.02,
		RevertRateAdd: map[types.Tier]float64{
			types.Tier1: 0,
			types.Tier2: 0.004,
			types.Tier3: 0.01,
		},
		ERC: map[string][]string{
			"2yr Fix":     {"4%", "3%", "then no ERC"},
			"3yr Fix":     {"4%", "3%", "2%", "then no ERC"},
			"2yr Tracker": {"4%", "3%", "then no ERC"},
		},
		CurrentMVR: 0.0859,
	}
}

func defaultCommercial() *MatrixTable {
	return &MatrixTable{
		Name:         "commercial",
		Tiers:        []types.Tier{types.Tier1, types.Tier2},
		ProductTypes: []string{"2yr Fix", "3yr Fix", "2yr Tracker"},
		FeeColumns:   []string{"6", "4", "2"},
		Products: map[types.Tier]map[string]ProductRate{
			types.Tier1: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0629, "4": 0.0719, "2": 0.0829}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0679, "4": 0.0749, "2": 0.0819}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0304, "4": 0.0404, "2": 0.0499}, IsMargin: true},
			},
			types.Tier2: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0679, "4": 0.0769, "2": 0.0879}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0729, "4": 0.0799, "2": 0.0869}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0334, "4": 0.0434, "2": 0.0529}, IsMargin: true},
			},
		},
		MinICRFix:          1.25,
		MinICRTracker:      1.30,
		MinLoan:            150000,
		MaxLoan:            2000000,
		StandardBBR:        0.04,
		StressBBR:          0.0425,
		TermMonths:     map[string]int{"2yr Fix": 24, "3yr Fix": 36, "2yr Tracker": 24},
		TotalTermYears: 10,
		// Commercial caps are tighter than residential: 6 rolled months
		// and 1.5% deferred on trackers
		MaxRolledMonths:    6,
		DeferredCapFix:     0.0125,
		DeferredCapTracker: 0.015,
		RevertRateAdd: map[types.Tier]float64{
			types.Tier1: 0.003,
			types.Tier2: 0.015,
		},
		ERC: map[string][]string{
			"2yr Fix":     {"4%", "3%", "then no ERC"},
			"3yr Fix":     {"4%", "3%", "2%", "then no ERC"},
			"2yr Tracker": {"4%", "3%", "then no ERC"},
		},
		CurrentMVR: 0.0859,
	}
}

func defaultSemiCommercial() *MatrixTable {
	t := defaultCommercial()
	t.Name = "semi-commercial"
	t.Products = map[types.Tier]map[string]ProductRate{
		types.Tier1: {
			"2yr Fix":     {Columns: map[string]float64{"6": 0.0619, "4": 0.0709, "2": 0.0819}},
			"3yr Fix":     {Columns: map[string]float64{"6": 0.0669, "4": 0.0739, "2": 0.0809}},
			"2yr Tracker": {Columns: map[string]float64{"6": 0.0304, "4": 0.0404, "2": 0.0499}, IsMargin: true},
		},
		types.Tier2: {
			"2yr Fix":     {Columns: map[string]float64{"6": 0.0659, "4": 0.0749, "2": 0.0859}},
			"3yr Fix":     {Columns: map[string]float64{"6": 0.0709, "4": 0.0779, "2": 0.0849}},
			"2yr Tracker": {Columns: map[string]float64{"6": 0.0334, "4": 0.0434, "2": 0.0529}, IsMargin: true},
		},
	}
	return t
}

func defaultPrime() *MatrixTable {
	return &MatrixTable{
		Name:         "prime",
		Tiers:        []types.Tier{types.Tier1, types.Tier2},
		ProductTypes: []string{"2yr Fix", "3yr Fix", "2yr Tracker"},
		FeeColumns:   []string{"6", "4", "3", "2"},
		Products: map[types.Tier]map[string]ProductRate{
			types.Tier1: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0529, "4": 0.0619, "3": 0.0679, "2": 0.0729}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0579, "4": 0.0649, "3": 0.0686, "2": 0.0719}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0149, "4": 0.0249, "3": 0.0304, "2": 0.0354}, IsMargin: true},
			},
			types.Tier2: {
				"2yr Fix":     {Columns: map[string]float64{"6": 0.0589, "4": 0.0679, "3": 0.0739, "2": 0.0789}},
				"3yr Fix":     {Columns: map[string]float64{"6": 0.0639, "4": 0.0709, "3": 0.0746, "2": 0.0779}},
				"2yr Tracker": {Columns: map[string]float64{"6": 0.0169, "4": 0.0269, "3": 0.0324, "2": 0.0374}, IsMargin: true},
			},
		},
		MinICRFix:     1.25,
		MinICRTracker: 1.30,
		MinLoan:       150000,
		MaxLoan:       3000000,
		StandardBBR:   0.04,
		StressBBR:     0.0425,
		MinStressRate: 0.055,
		TermMonths:    map[string]int{"2yr Fix": 24, "3yr Fix": 36, "2yr Tracker": 24},
		// Prime illustrations quote the full 25-year mortgage term and
		// carry no rolled or deferred interest
		TotalTermYears: 25,
		RevertRateAdd: map[types.Tier]float64{
			types.Tier1: 0,
			types.Tier2: 0.004,
		},
		ERC: map[string][]string{
			"2yr Fix":     {"4%", "3%", "then no ERC"},
			"3yr Fix":     {"4%", "3%", "2%", "then no ERC"},
			"2yr Tracker": {"4%", "3%", "then no ERC"},
		},
		CurrentMVR: 0.0859,
	}
}

// Fusion property classes
const (
	FusionResidential = "Residential"
	FusionCommercial  = "Semi / Full Commercial"
)

func defaultFusion() *FusionTable {
	return &FusionTable{
		BBR:               0.04,
		ArrangementFeePct: 0.02,
		TermMonths:        24,
		MinLoan:           100000,
		MinRolledMonths:   6,
		MaxRolledMonths:   12,
		MaxDeferred:       0.02,
		LTVCaps: map[string]float64{
			FusionResidential: 0.75,
			FusionCommercial:  0.70,
		},
		Bands: map[string][]FusionBand{
			FusionResidential: {
				{Name: "Standard", Rate: 0.0479, MinLoan: 100000, MaxLoan: 3000000},
				{Name: "Large", Rate: 0.0599, MinLoan: 3000001, MaxLoan: 20000000},
			},
			FusionCommercial: {
				{Name: "Standard", Rate: 0.0529, MinLoan: 100000, MaxLoan: 3000000},
				{Name: "Large", Rate: 0.0649, MinLoan: 3000001, MaxLoan: 15000000},
			},
		},
		ERC: "Yr1 6% | Yr2 3% (25% ERC free after 6m, no ERC after 21m)",
	}
}

// Bridging product names
const (
	BridgeSingleProperty      = "Single Property"
	BridgeLargeSingleProperty = "Large Single Property"
	BridgeBTLPortfolio        = "BTL Portfolio Multi-Unit Dev Exit"
	BridgeLightDevelopment    = "Permitted & Light Development"
	BridgeSemiCommercial      = "Semi & Commercial"
	BridgeSemiCommercialLarge = "Semi & Commercial Large Loans"
	BridgeSecondCharge        = "2nd Charge Residential Only"
)

func defaultBridging() *BridgeTable {
	return &BridgeTable{
		ArrangementFeePct: 0.02,
		StandardBBR:       0.04,
		MinTermMonths:     3,
		MaxTermMonths:     18,
		LTVTiers: []BridgeLTVTier{
			{Label: "60% LTV", Cap: 0.60},
			{Label: "70% LTV", Cap: 0.70},
			{Label: "75% LTV", Cap: 0.75},
		},
		Rates: map[string]map[string][]*float64{
			BridgeVariable: {
				BridgeSingleProperty:      {ptr(0.0045), ptr(0.0055), ptr(0.0065)},
				BridgeLargeSingleProperty: {ptr(0.0055), ptr(0.0065), ptr(0.0075)},
				BridgeBTLPortfolio:        {ptr(0.0050), ptr(0.0060), ptr(0.0070)},
				BridgeLightDevelopment:    {ptr(0.0050), ptr(0.0060), ptr(0.0070)},
				BridgeSemiCommercial:      {ptr(0.0050), ptr(0.0060), ptr(0.0070)},
				BridgeSemiCommercialLarge: {ptr(0.0055), ptr(0.0065), ptr(0.0075)},
				BridgeSecondCharge:        {ptr(0.0050), ptr(0.0060), nil},
			},
			BridgeFixed: {
				BridgeSingleProperty:      {ptr(0.0080), ptr(0.0090), ptr(0.0100)},
				BridgeLargeSingleProperty: {ptr(0.0090), ptr(0.0100), ptr(0.0110)},
				BridgeBTLPortfolio:        {ptr(0.0085), ptr(0.0095), ptr(0.0105)},
				BridgeLightDevelopment:    {ptr(0.0085), ptr(0.0095), ptr(0.0105)},
				BridgeSemiCommercial:      {ptr(0.0085), ptr(0.0095), ptr(0.0105)},
				BridgeSemiCommercialLarge: {ptr(0.0090), ptr(0.0100), ptr(0.0110)},
				BridgeSecondCharge:        {ptr(0.0085), ptr(0.0095), nil},
			},
		},
		LoanSizes: map[string]Band{
			BridgeSingleProperty:      {Min: 100000, Max: 4000000},
			BridgeLargeSingleProperty: {Min: 4000001, Max: 20000000},
			BridgeBTLPortfolio:        {Min: 100000, Max: 50000000},
			BridgeLightDevelopment:    {Min: 100000, Max: 20000000},
			BridgeSemiCommercial:      {Min: 100000, Max: 3000000},
			BridgeSemiCommercialLarge: {Min: 3000001, Max: 15000000},
			BridgeSecondCharge:        {Min: 100000, Max: 5000000},
		},
	}
}
