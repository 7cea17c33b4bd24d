package models

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want float64
	}{
		{"simple", LineItem{Quantity: 2, UnitPrice: 10}, 20},
		{"fractional quantity", LineItem{Quantity: 1.5, UnitPrice: 40}, 60},
		{"zero price", LineItem{Quantity: 3}, 0},
		{"negative price propagates", LineItem{Quantity: 2, UnitPrice: -5}, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTotal(tt.item); !almostEqual(got, tt.want) {
				t.Errorf("LineTotal() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSubtotal(t *testing.T) {
	items := []LineItem{
		{Description: "A", Quantity: 2, UnitPrice: 10},
		{Description: "B", Quantity: 1, UnitPrice: 5},
		{Description: "C", Quantity: 3, UnitPrice: 0.1},
	}
	var want float64
	for _, it := range items {
		want += it.Quantity * it.UnitPrice
	}
	if got := Subtotal(items); !almostEqual(got, want) {
		t.Errorf("Subtotal() = %f, want %f", got, want)
	}
	if got := Subtotal(nil); got != 0 {
		t.Errorf("Subtotal(nil) = %f, want 0", got)
	}
	if got := Subtotal([]LineItem{}); got != 0 {
		t.Errorf("Subtotal([]) = %f, want 0", got)
	}
}

func TestTaxAndGrandTotal(t *testing.T) {
	if Tax(0) != 0 || GrandTotal(0) != 0 {
		t.Fatalf("zero subtotal must give zero tax and total")
	}
	for _, s := range []float64{1, 25, 99.99, 1234.56, 1e6} {
		if got := GrandTotal(s); !almostEqual(got, s*1.2) {
			t.Errorf("GrandTotal(%f) = %f, want %f", s, got, s*1.2)
		}
		if got := Tax(s); !almostEqual(got, s*0.2) {
			t.Errorf("Tax(%f) = %f, want %f", s, got, s*0.2)
		}
	}
}

func TestComputeTotalsDoesNotMutate(t *testing.T) {
	items := []LineItem{{Description: "A", Quantity: 2, UnitPrice: 10}, {Description: "B", Quantity: 1, UnitPrice: 5}}
	before := append([]LineItem(nil), items...)
	got := ComputeTotals(items)
	if got.Subtotal != 25 || got.Tax != 5 || got.Total != 30 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	for i := range items {
		if items[i] != before[i] {
			t.Fatalf("item %d mutated: %+v", i, items[i])
		}
	}
}

func TestDocumentDerivedAmounts(t *testing.T) {
	doc := &Document{Kind: KindInvoice, Subtotal: 100}
	if doc.Tax() != 20 {
		t.Errorf("Tax() = %f, want 20", doc.Tax())
	}
	if doc.Total() != 120 {
		t.Errorf("Total() = %f, want 120", doc.Total())
	}
	if !doc.IsInvoice() || doc.IsQuote() {
		t.Errorf("kind helpers disagree for %s", doc.Kind)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"quote", KindQuote},
		{"Devis", KindQuote},
		{" invoice ", KindInvoice},
		{"FACTURE", KindInvoice},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	for _, name := range KindNames {
		if _, err := ParseKind(name); err != nil {
			t.Errorf("ParseKind(%q) rejected a listed name: %v", name, err)
		}
	}
	if _, err := ParseKind("receipt"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(KindQuote, 1); got != "DEV-1" {
		t.Errorf("FormatNumber(quote, 1) = %q", got)
	}
	if got := FormatNumber(KindInvoice, 12); got != "FACT-12" {
		t.Errorf("FormatNumber(invoice, 12) = %q", got)
	}
}

func TestProfileHasLogo(t *testing.T) {
	p := &CompanyProfile{}
	if p.HasLogo() {
		t.Fatalf("empty profile should not have a logo")
	}
	p.Logo = "data:image/png;base64,AAAA"
	if !p.HasLogo() {
		t.Fatalf("expected logo")
	}
}
