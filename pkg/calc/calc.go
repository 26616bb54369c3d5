// Package calc implements the line-item and document total arithmetic for
// financial documents (sales invoices, quotations, purchase orders, bills).
// All functions are pure; the same code runs in the CLI preview and in the
// emulator backend when it re-derives totals for validation.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// TaxMode controls how document totals combine line amounts and tax.
type TaxMode string

const (
	// TaxExcluding adds tax on top of the pre-tax line amounts.
	TaxExcluding TaxMode = "Excluding"
	// TaxIncluding treats line amounts as tax-inclusive; the pre-tax
	// subtotal is derived by subtracting the accumulated tax.
	TaxIncluding TaxMode = "Including"
	// TaxNone ignores tax entirely.
	TaxNone TaxMode = "No Tax"
)

// ParseTaxMode normalizes a tax mode string. The legacy wire spellings
// "Exclusive" and "Inclusive" are accepted alongside the canonical ones.
// An empty string defaults to Excluding.
func ParseTaxMode(s string) (TaxMode, error) {
	switch strings.TrimSpace(s) {
	case "", "Excluding", "Exclusive":
		return TaxExcluding, nil
	case "Including", "Inclusive":
		return TaxIncluding, nil
	case "No Tax", "NoTax":
		return TaxNone, nil
	}
	return "", fmt.Errorf("unknown tax mode: %q", s)
}

// ErrNoLineItems is returned by SubmitLines when no line has an item
// selected. It is a client-side validation failure; no request is made.
var ErrNoLineItems = errors.New("add at least one line item with an item selected")

// Line is one editable row of a financial document. TaxPercent is the
// resolved percentage for TaxRateID (0 when no tax rate is selected).
type Line struct {
	ItemID          string
	Description     string
	Quantity        float64
	UnitPrice       float64
	DiscountPercent float64
	AccountID       string
	TaxRateID       string
	TaxPercent      float64
	ProjectID       string
}

// LineAmounts holds the derived amounts for a single line.
// LineAmount is always pre-tax; tax is tracked as a parallel column and is
// combined with line amounts only at the document level, per TaxMode.
type LineAmounts struct {
	Subtotal       float64 // quantity × unit price, before discount
	DiscountAmount float64
	LineAmount     float64 // after discount, before tax
	TaxAmount      float64
}

// Totals holds the document-level totals folded from all lines.
type Totals struct {
	Subtotal      float64
	TotalDiscount float64
	TotalTax      float64
	GrandTotal    float64
}

// Amounts computes the derived amounts for one line. Garbage numeric input
// (NaN, ±Inf) is coerced to zero so a half-filled document still produces
// usable totals. A discount above 100% is not rejected and yields a
// negative line amount; validation of bounds is the backend's concern.
func Amounts(l Line) LineAmounts {
	qty := sanitize(l.Quantity)
	price := sanitize(l.UnitPrice)
	disc := sanitize(l.DiscountPercent)
	rate := sanitize(l.TaxPercent)

	subtotal := qty * price
	discountAmount := subtotal * (disc / 100)
	lineAmount := subtotal - discountAmount
	taxAmount := lineAmount * (rate / 100)

	return LineAmounts{
		Subtotal:       Round2(subtotal),
		DiscountAmount: Round2(discountAmount),
		LineAmount:     Round2(lineAmount),
		TaxAmount:      Round2(taxAmount),
	}
}

// DocumentTotals folds all lines into document totals under the given tax
// mode. For Including, the pre-tax subtotal is derived by subtraction
// (Σ amount − Σ tax), not by dividing through (1 + rate).
func DocumentTotals(lines []Line, mode TaxMode) Totals {
	var sum, disc, tax float64
	for _, l := range lines {
		a := Amounts(l)
		sum += a.LineAmount
		disc += a.DiscountAmount
		tax += a.TaxAmount
	}

	t := Totals{TotalDiscount: Round2(disc)}
	switch mode {
	case TaxIncluding:
		t.TotalTax = Round2(tax)
		t.GrandTotal = Round2(sum)
		t.Subtotal = Round2(sum - tax)
	case TaxNone:
		t.TotalTax = 0
		t.GrandTotal = Round2(sum)
		t.Subtotal = Round2(sum)
	default: // Excluding
		t.TotalTax = Round2(tax)
		t.GrandTotal = Round2(sum + tax)
		t.Subtotal = Round2(sum)
	}
	return t
}

// ItemDefaults carries the catalog defaults applied when an item is
// selected on a line. The caller resolves sale vs purchase pricing before
// building it.
type ItemDefaults struct {
	ItemID      string
	Description string
	UnitPrice   float64
	AccountID   string
	TaxRateID   string
	TaxPercent  float64
}

// ApplyItemDefaults returns the line with the catalog defaults filled in.
// Quantity, discount, and project are left untouched; subsequent manual
// edits are not re-overwritten unless the item selection changes again.
func ApplyItemDefaults(l Line, d ItemDefaults) Line {
	l.ItemID = d.ItemID
	l.Description = d.Description
	l.UnitPrice = d.UnitPrice
	l.AccountID = d.AccountID
	l.TaxRateID = d.TaxRateID
	l.TaxPercent = d.TaxPercent
	return l
}

// SubmitLines filters out lines with no item selected, returning the lines
// fit for submission. ErrNoLineItems is returned when none remain.
func SubmitLines(lines []Line) ([]Line, error) {
	valid := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ItemID != "" {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoLineItems
	}
	return valid, nil
}

// ResolveTaxPercents fills each line's TaxPercent from the rate table keyed
// by tax rate ID. Lines with no tax rate, or one missing from the table,
// get zero.
func ResolveTaxPercents(lines []Line, rates map[string]float64) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		l.TaxPercent = rates[l.TaxRateID]
		out[i] = l
	}
	return out
}

// Round2 rounds to 2 decimal places, the precision of every externally
// visible amount.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
