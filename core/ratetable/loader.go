package ratetable

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"lender-quote/core/types"
	"lender-quote/internal/errors"
)

// ratesFile is the HCL schema for a rates override file. The file only
// needs to name what it changes; everything else keeps the compiled-in
// default. This replaces the ambient globals the rate sheets used to
// live in — overrides are decoded once and injected explicitly.
type ratesFile struct {
	StandardBBR *float64 `hcl:"standard_bbr,optional"`
	StressBBR   *float64 `hcl:"stress_bbr,optional"`
	CurrentMVR  *float64 `hcl:"current_mvr,optional"`

	Matrix []matrixBlock `hcl:"matrix,block"`
}

type matrixBlock struct {
	Name string `hcl:"name,label"`

	MinLoan *float64 `hcl:"min_loan,optional"`
	MaxLoan *float64 `hcl:"max_loan,optional"`

	MinICRFix     *float64 `hcl:"min_icr_fix,optional"`
	MinICRTracker *float64 `hcl:"min_icr_tracker,optional"`

	Tiers []tierBlock `hcl:"tier,block"`
}

type tierBlock struct {
	Name string `hcl:"name,label"`

	RevertAdd *float64 `hcl:"revert_add,optional"`

	Products []productBlock `hcl:"product,block"`
}

type productBlock struct {
	Name string `hcl:"name,label"`

	Margin bool               `hcl:"margin,optional"`
	Rates  map[string]float64 `hcl:"rates"`
}

// Load returns the default tables with overrides from an HCL rates file
// applied. An empty path returns the defaults unchanged. The result is
// validated before being returned.
func Load(path string) (*Tables, error) {
	tables := Default()
	if path == "" {
		return tables, tables.Validate()
	}

	var file ratesFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decoding rates file", err)
	}
	if err := apply(tables, &file); err != nil {
		return nil, err
	}
	return tables, tables.Validate()
}

func apply(tables *Tables, file *ratesFile) error {
	matrices := map[string]*MatrixTable{
		"residential":     tables.Residential,
		"commercial":      tables.Commercial,
		"semi-commercial": tables.SemiCommercial,
		"prime":           tables.Prime,
	}

	for _, m := range matrices {
		if file.StandardBBR != nil {
			m.StandardBBR = *file.StandardBBR
		}
		if file.StressBBR != nil {
			m.StressBBR = *file.StressBBR
		}
		if file.CurrentMVR != nil {
			m.CurrentMVR = *file.CurrentMVR
		}
	}
	if file.StandardBBR != nil {
		tables.Fusion.BBR = *file.StandardBBR
		tables.Bridging.StandardBBR = *file.StandardBBR
	}

	for _, block := range file.Matrix {
		m, ok := matrices[block.Name]
		if !ok {
			return errors.Config("rates file: unknown matrix table " + block.Name)
		}
		if block.MinLoan != nil {
			m.MinLoan = *block.MinLoan
		}
		if block.MaxLoan != nil {
			m.MaxLoan = *block.MaxLoan
		}
		if block.MinICRFix != nil {
			m.MinICRFix = *block.MinICRFix
		}
		if block.MinICRTracker != nil {
			m.MinICRTracker = *block.MinICRTracker
		}
		for _, tb := range block.Tiers {
			tier, ok := parseTier(tb.Name)
			if !ok {
				return errors.Config("rates file: unknown tier " + tb.Name)
			}
			if m.Products[tier] == nil {
				m.Products[tier] = map[string]ProductRate{}
			}
			if tb.RevertAdd != nil {
				if m.RevertRateAdd == nil {
					m.RevertRateAdd = map[types.Tier]float64{}
				}
				m.RevertRateAdd[tier] = *tb.RevertAdd
			}
			for _, pb := range tb.Products {
				cols := make(map[string]float64, len(pb.Rates))
				for col, rate := range pb.Rates {
					cols[col] = rate
				}
				m.Products[tier][pb.Name] = ProductRate{Columns: cols, IsMargin: pb.Margin}
			}
		}
	}
	return nil
}

func parseTier(label string) (types.Tier, bool) {
	switch label {
	case "Tier 1":
		return types.Tier1, true
	case "Tier 2":
		return types.Tier2, true
	case "Tier 3":
		return types.Tier3, true
	}
	return 0, false
}
