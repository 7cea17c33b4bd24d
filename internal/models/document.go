package models

import (
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes quotes (devis) from invoices (factures).
type Kind string

const (
	KindQuote   Kind = "quote"
	KindInvoice Kind = "invoice"
)

// ErrUnknownKind is returned when a document kind is neither quote nor invoice.
var ErrUnknownKind = errors.New("unknown_document_kind")

// Kinds lists every document kind in display order.
var Kinds = []Kind{KindQuote, KindInvoice}

// KindNames lists every spelling ParseKind accepts.
var KindNames = []string{"quote", "devis", "invoice", "facture"}

// ParseKind accepts the canonical names plus the French ones used on printed documents.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quote", "devis":
		return KindQuote, nil
	case "invoice", "facture":
		return KindInvoice, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindQuote || k == KindInvoice
}

// NumberPrefix returns the display prefix of document numbers of this kind.
func (k Kind) NumberPrefix() string {
	switch k {
	case KindQuote:
		return "DEV"
	case KindInvoice:
		return "FACT"
	}
	return ""
}

// LineItem is one row of a document. The line total is always derived, see LineTotal.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// NewLineItem returns the blank row the editor starts with.
func NewLineItem() LineItem {
	return LineItem{Quantity: 1}
}

// Document is a committed quote or invoice. It is an immutable snapshot: Subtotal is
// frozen at commit time and tax/total are derived from it on display.
type Document struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"type"`
	Number string `json:"number"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`

	Items []LineItem `json:"items"`

	// Dates are kept as entered (YYYY-MM-DD from the editor); malformed values are not rejected.
	IssueDate  string `json:"issue_date"`
	ValidUntil string `json:"valid_until,omitempty"`

	Subtotal float64 `json:"subtotal"`
}

// IsQuote returns true for quotes.
func (d *Document) IsQuote() bool {
	return d.Kind == KindQuote
}

// IsInvoice returns true for invoices.
func (d *Document) IsInvoice() bool {
	return d.Kind == KindInvoice
}

// Tax returns the VAT amount derived from the frozen subtotal.
func (d *Document) Tax() float64 {
	return Tax(d.Subtotal)
}

// Total returns the tax-inclusive total (TTC).
func (d *Document) Total() float64 {
	return GrandTotal(d.Subtotal)
}

// FormatNumber builds the display number of the n-th document of a kind (DEV-1, FACT-3, ...).
func FormatNumber(kind Kind, n int) string {
	return fmt.Sprintf("%s-%d", kind.NumberPrefix(), n)
}
