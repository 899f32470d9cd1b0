// Package quote turns raw solver output into a presentable quote:
// rate display text, revert-rate and ERC descriptions, term
// descriptors, and rounded display figures. The assembler never alters
// a solver figure; it only formats.
package quote

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"lender-quote/core/ratetable"
	"lender-quote/core/types"
)

// AnnotateMatrix fills in the display fields of a matrix-variant result
func AnnotateMatrix(t *ratetable.MatrixTable, tier types.Tier, res *types.QuoteResult) {
	for i := range res.Columns {
		c := &res.Columns[i]
		c.FullRateText = RateText(c.CouponRate, c.IsTracker)
		c.PayRateText = payRateText(c)
	}
	res.RevertRate = RevertText(t.RevertRateAdd[tier])
	if erc, ok := t.ERC[res.ProductType]; ok {
		res.ERC = strings.Join(erc, " / ")
	}
	res.TermDescriptor = fmt.Sprintf("%d year term | %s initial rate", t.TotalTermYears, res.ProductType)
}

// AnnotateFusion fills in the display fields of a Fusion result
func AnnotateFusion(t *ratetable.FusionTable, res *types.QuoteResult) {
	if res.Single == nil {
		return
	}
	c := res.Single
	c.FullRateText = RateText(c.CouponRate, true)
	c.PayRateText = payRateText(c)
	res.ERC = t.ERC
	res.TermDescriptor = fmt.Sprintf("%d Months (12m Extension Possible)", t.TermMonths)
}

// AnnotateBridge fills in the display fields of a bridging result.
// Bridging rates are monthly, so the text carries the per-month unit.
func AnnotateBridge(t *ratetable.BridgeTable, res *types.QuoteResult) {
	if res.Fixed != nil {
		res.Fixed.FullRateText = Percent(res.Fixed.CouponRate) + " per month"
		res.Fixed.PayRateText = res.Fixed.FullRateText
	}
	if res.Variable != nil {
		res.Variable.FullRateText = Percent(res.Variable.CouponRate) + " + BBR/12 per month"
		res.Variable.PayRateText = res.Variable.FullRateText
	}
	if res.Fixed != nil {
		res.TermDescriptor = fmt.Sprintf("%d month bridge", res.Fixed.TermMonths)
	}
}

// RateText renders a coupon rate for display: trackers show the margin
// over bank base rate, fixed products the absolute rate
func RateText(coupon float64, isTracker bool) string {
	if isTracker {
		return Percent(coupon) + " + BBR"
	}
	return Percent(coupon)
}

func payRateText(c *types.ColumnQuote) string {
	if c.DeferredCap <= 0 {
		return c.FullRateText
	}
	return RateText(c.CouponRate-c.DeferredCap, c.IsTracker)
}

// RevertText renders the revert rate as an offset over the managed
// variable rate
func RevertText(add float64) string {
	if add <= 0 {
		return "MVR"
	}
	return "MVR + " + Percent(add)
}

// Percent renders a decimal rate as a display percentage with up to two
// decimal places, trailing zeros trimmed
func Percent(rate float64) string {
	d := decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).Round(2)
	return d.String() + "%"
}

// Money renders an amount as whole pounds with thousands separators
func Money(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteRune('£')
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Flatten renders a result as flat key/value pairs for form-encoded
// delivery to downstream lead systems
func Flatten(res *types.QuoteResult) map[string]string {
	out := map[string]string{
		"variant": string(res.Variant),
		"tier":    res.Tier,
	}
	if res.ProductType != "" {
		out["productType"] = res.ProductType
	}
	if res.RevertRate != "" {
		out["revertRate"] = res.RevertRate
	}
	if res.ERC != "" {
		out["erc"] = res.ERC
	}
	if res.TermDescriptor != "" {
		out["term"] = res.TermDescriptor
	}

	for i := range res.Columns {
		flattenColumn(out, "col"+res.Columns[i].FeeColumn+"_", &res.Columns[i])
	}
	if res.Single != nil {
		flattenColumn(out, "", res.Single)
	}
	if res.Fixed != nil {
		flattenColumn(out, "fixed_", res.Fixed)
	}
	if res.Variable != nil {
		flattenColumn(out, "variable_", res.Variable)
	}
	if res.Best != nil {
		out["best_feeColumn"] = res.Best.FeeColumn
		out["best_grossLoan"] = Money(res.Best.GrossLoan)
		out["best_netLoan"] = Money(res.Best.NetLoan)
		out["best_grossLtv"] = strconv.Itoa(res.Best.GrossLTVPct) + "%"
		out["best_netLtv"] = strconv.Itoa(res.Best.NetLTVPct) + "%"
	}
	return out
}

func flattenColumn(out map[string]string, prefix string, c *types.ColumnQuote) {
	if c.ProductName != "" {
		out[prefix+"product"] = c.ProductName
	}
	out[prefix+"rate"] = c.FullRateText
	out[prefix+"payRate"] = c.PayRateText
	out[prefix+"grossLoan"] = Money(c.GrossLoan)
	out[prefix+"netLoan"] = Money(c.NetLoan)
	out[prefix+"fee"] = Money(c.FeeAmount)
	out[prefix+"totalInterest"] = Money(c.TotalInterest)
	out[prefix+"monthlyDD"] = Money(c.MonthlyDirectDebit)
	out[prefix+"ltv"] = Percent(c.LTV)
}
