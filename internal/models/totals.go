package models

// TaxRate is the fixed VAT (TVA) rate applied to every document.
const TaxRate = 0.20

// LineTotal returns quantity * unit price. Negative inputs propagate as-is.
func LineTotal(item LineItem) float64 {
	return item.Quantity * item.UnitPrice
}

// Subtotal sums the line totals (HT). An empty list sums to 0.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += LineTotal(it)
	}
	return total
}

// Tax returns the VAT owed on a subtotal.
func Tax(subtotal float64) float64 {
	return subtotal * TaxRate
}

// GrandTotal returns subtotal plus tax (TTC).
func GrandTotal(subtotal float64) float64 {
	return subtotal + Tax(subtotal)
}

// Totals groups the three amounts shown under a document.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives HT, TVA and TTC for a list of items.
func ComputeTotals(items []LineItem) Totals {
	ht := Subtotal(items)
	return Totals{Subtotal: ht, Tax: Tax(ht), Total: GrandTotal(ht)}
}
