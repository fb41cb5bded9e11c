// Package tax implements GST line and invoice arithmetic.
//
// All intermediate math runs on decimals and is rounded half up to two
// places before leaving the package, so totals never drift from the sum of
// their rounded parts. Intra-state supplies split tax into CGST+SGST,
// inter-state supplies use IGST; the split is the caller's choice and is
// not enforced here.
package tax

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineInput carries the caller-controlled fields of one invoice line.
type LineInput struct {
	Qty            float64
	Rate           float64
	DiscountAmount float64
	CGSTPercent    float64
	SGSTPercent    float64
	IGSTPercent    float64
}

// LineAmounts holds the derived fields of one invoice line.
type LineAmounts struct {
	Total         float64
	TaxableAmount float64
	CGSTAmount    float64
	SGSTAmount    float64
	IGSTAmount    float64
	FinalAmount   float64
}

// Totals holds the invoice-level aggregates across all lines.
type Totals struct {
	Subtotal      float64
	TotalDiscount float64
	TotalCGST     float64
	TotalSGST     float64
	TotalIGST     float64
	TotalTax      float64
	GrandTotal    float64
}

// ComputeLine derives the taxable base, the per-tax amounts and the final
// amount of a single line.
func ComputeLine(in LineInput) LineAmounts {
	total := round2(decimal.NewFromFloat(in.Qty).Mul(decimal.NewFromFloat(in.Rate)))
	discount := round2(decimal.NewFromFloat(in.DiscountAmount))
	taxable := total.Sub(discount)

	cgst := taxAmount(taxable, in.CGSTPercent)
	sgst := taxAmount(taxable, in.SGSTPercent)
	igst := taxAmount(taxable, in.IGSTPercent)

	final := taxable.Add(cgst).Add(sgst).Add(igst)

	return LineAmounts{
		Total:         total.InexactFloat64(),
		TaxableAmount: taxable.InexactFloat64(),
		CGSTAmount:    cgst.InexactFloat64(),
		SGSTAmount:    sgst.InexactFloat64(),
		IGSTAmount:    igst.InexactFloat64(),
		FinalAmount:   final.InexactFloat64(),
	}
}

// ComputeTotals sums line aggregates. Inputs are expected to come from
// ComputeLine so every term is already rounded to currency precision.
func ComputeTotals(inputs []LineInput, lines []LineAmounts) Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero
	grand := decimal.Zero

	for i, line := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(line.Total))
		discount = discount.Add(round2(decimal.NewFromFloat(inputs[i].DiscountAmount)))
		cgst = cgst.Add(decimal.NewFromFloat(line.CGSTAmount))
		sgst = sgst.Add(decimal.NewFromFloat(line.SGSTAmount))
		igst = igst.Add(decimal.NewFromFloat(line.IGSTAmount))
		grand = grand.Add(decimal.NewFromFloat(line.FinalAmount))
	}

	totalTax := cgst.Add(sgst).Add(igst)

	return Totals{
		Subtotal:      subtotal.InexactFloat64(),
		TotalDiscount: discount.InexactFloat64(),
		TotalCGST:     cgst.InexactFloat64(),
		TotalSGST:     sgst.InexactFloat64(),
		TotalIGST:     igst.InexactFloat64(),
		TotalTax:      totalTax.InexactFloat64(),
		GrandTotal:    grand.InexactFloat64(),
	}
}

func taxAmount(taxable decimal.Decimal, percent float64) decimal.Decimal {
	if percent == 0 {
		return decimal.Zero
	}
	return round2(taxable.Mul(decimal.NewFromFloat(percent)).Div(hundred))
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
