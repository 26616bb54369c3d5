package calc

import (
	"errors"
	"math"
	"testing"
)

func TestAmounts(t *testing.T) {
	tests := []struct {
		name       string
		line       Line
		lineAmount float64
		taxAmount  float64
	}{
		{"plain", Line{Quantity: 2, UnitPrice: 100, TaxPercent: 10}, 200, 20},
		{"with discount", Line{Quantity: 2, UnitPrice: 100, DiscountPercent: 10, TaxPercent: 10}, 180, 18},
		{"no tax rate", Line{Quantity: 1, UnitPrice: 50}, 50, 0},
		{"zero quantity", Line{UnitPrice: 100, TaxPercent: 10}, 0, 0},
		{"discount over 100 goes negative", Line{Quantity: 1, UnitPrice: 100, DiscountPercent: 150}, -50, -5},
		{"fractional quantity", Line{Quantity: 0.5, UnitPrice: 99.99, TaxPercent: 5}, 50, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Amounts(tt.line)
			if a.LineAmount != tt.lineAmount {
				t.Errorf("LineAmount = %v, expected %v", a.LineAmount, tt.lineAmount)
			}
			if a.TaxAmount != tt.taxAmount {
				t.Errorf("TaxAmount = %v, expected %v", a.TaxAmount, tt.taxAmount)
			}
		})
	}
}

func TestAmountsSanitizesGarbage(t *testing.T) {
	a := Amounts(Line{Quantity: math.NaN(), UnitPrice: math.Inf(1), TaxPercent: 10})
	if a.LineAmount != 0 || a.TaxAmount != 0 {
		t.Errorf("expected zero amounts for non-finite input, got %+v", a)
	}
}

// Three lines: (2×100, 10% disc, 10% tax), (1×50, no tax), (5×20, 5% tax).
func exampleLines() []Line {
	return []Line{
		{ItemID: "a", Quantity: 2, UnitPrice: 100, DiscountPercent: 10, TaxPercent: 10},
		{ItemID: "b", Quantity: 1, UnitPrice: 50},
		{ItemID: "c", Quantity: 5, UnitPrice: 20, TaxPercent: 5},
	}
}

func TestDocumentTotalsExcluding(t *testing.T) {
	got := DocumentTotals(exampleLines(), TaxExcluding)
	want := Totals{Subtotal: 330, TotalDiscount: 20, TotalTax: 23, GrandTotal: 353}
	if got != want {
		t.Errorf("DocumentTotals(Excluding) = %+v, expected %+v", got, want)
	}
}

func TestDocumentTotalsIncluding(t *testing.T) {
	got := DocumentTotals(exampleLines(), TaxIncluding)
	if got.GrandTotal != 330 {
		t.Errorf("GrandTotal = %v, expected 330", got.GrandTotal)
	}
	if got.Subtotal != 307 {
		t.Errorf("Subtotal = %v, expected 307 (grand total minus tax)", got.Subtotal)
	}
	if got.TotalTax != 23 {
		t.Errorf("TotalTax = %v, expected 23", got.TotalTax)
	}
}

func TestDocumentTotalsNoTax(t *testing.T) {
	got := DocumentTotals(exampleLines(), TaxNone)
	if got.GrandTotal != 330 || got.Subtotal != 330 || got.TotalTax != 0 {
		t.Errorf("DocumentTotals(No Tax) = %+v", got)
	}
}

func TestDocumentTotalsIdempotent(t *testing.T) {
	lines := exampleLines()
	first := DocumentTotals(lines, TaxExcluding)
	second := DocumentTotals(lines, TaxExcluding)
	if first != second {
		t.Errorf("recomputation changed totals: %+v vs %+v", first, second)
	}
}

func TestParseTaxMode(t *testing.T) {
	tests := []struct {
		input   string
		want    TaxMode
		wantErr bool
	}{
		{"Excluding", TaxExcluding, false},
		{"Exclusive", TaxExcluding, false},
		{"Including", TaxIncluding, false},
		{"Inclusive", TaxIncluding, false},
		{"No Tax", TaxNone, false},
		{"", TaxExcluding, false},
		{"Bogus", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTaxMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaxMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTaxMode(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubmitLines(t *testing.T) {
	lines := []Line{
		{ItemID: "a", Quantity: 1, UnitPrice: 10},
		{Quantity: 3, UnitPrice: 5}, // no item selected, dropped
	}

	valid, err := SubmitLines(lines)
	if err != nil {
		t.Fatalf("SubmitLines() error = %v", err)
	}
	if len(valid) != 1 || valid[0].ItemID != "a" {
		t.Errorf("SubmitLines() = %+v, expected only line a", valid)
	}
}

func TestSubmitLinesAllEmpty(t *testing.T) {
	_, err := SubmitLines([]Line{{Quantity: 1, UnitPrice: 10}, {}})
	if !errors.Is(err, ErrNoLineItems) {
		t.Errorf("SubmitLines() error = %v, expected ErrNoLineItems", err)
	}
}

func TestApplyItemDefaults(t *testing.T) {
	line := Line{Quantity: 4, DiscountPercent: 5, ProjectID: "p1"}
	d := ItemDefaults{
		ItemID:      "itm1",
		Description: "Widget",
		UnitPrice:   25,
		AccountID:   "acc1",
		TaxRateID:   "tax1",
		TaxPercent:  10,
	}

	got := ApplyItemDefaults(line, d)

	if got.ItemID != "itm1" || got.Description != "Widget" || got.UnitPrice != 25 {
		t.Errorf("item fields not applied: %+v", got)
	}
	if got.AccountID != "acc1" || got.TaxRateID != "tax1" || got.TaxPercent != 10 {
		t.Errorf("account/tax defaults not applied: %+v", got)
	}
	if got.Quantity != 4 || got.DiscountPercent != 5 || got.ProjectID != "p1" {
		t.Errorf("manual fields were overwritten: %+v", got)
	}
}

func TestResolveTaxPercents(t *testing.T) {
	rates := map[string]float64{"gst": 10, "vat": 20}
	lines := ResolveTaxPercents([]Line{
		{TaxRateID: "gst"},
		{TaxRateID: "vat"},
		{TaxRateID: ""},
		{TaxRateID: "missing"},
	}, rates)

	want := []float64{10, 20, 0, 0}
	for i, l := range lines {
		if l.TaxPercent != want[i] {
			t.Errorf("line %d TaxPercent = %v, expected %v", i, l.TaxPercent, want[i])
		}
	}
}
