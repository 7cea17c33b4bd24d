package services

import (
	"github.com/diewo77/go-devis/i18n"
	"github.com/diewo77/go-devis/internal/models"
)

// PreviewLine is one formatted row of the item table.
type PreviewLine struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// Preview carries every value the print layout needs, already computed and formatted.
type Preview struct {
	Lang       string                `json:"lang"`
	Kind       models.Kind           `json:"type"`
	Title      string                `json:"title"`
	Number     string                `json:"number"`
	IssueDate  string                `json:"issue_date"`
	ValidUntil string                `json:"valid_until,omitempty"`
	Company    models.CompanyProfile `json:"company"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`

	Lines    []PreviewLine `json:"lines"`
	Amounts  models.Totals `json:"amounts"`
	Subtotal string        `json:"subtotal"`
	Tax      string        `json:"tax"`
	Total    string        `json:"total"`
	Footer   []string      `json:"footer"`
}

// BuildPreview formats a committed document for printing. Amounts come from the
// frozen subtotal, never from re-summing the items.
func BuildPreview(doc models.Document, profile models.CompanyProfile, lang string) Preview {
	lang = i18n.Normalize(lang)
	p := Preview{
		Lang:          lang,
		Kind:          doc.Kind,
		Number:        doc.Number,
		IssueDate:     i18n.Date(lang, doc.IssueDate),
		Company:       profile,
		ClientName:    doc.ClientName,
		ClientAddress: doc.ClientAddress,
		ClientEmail:   doc.ClientEmail,
		Lines:         make([]PreviewLine, 0, len(doc.Items)),
		Amounts:       models.Totals{Subtotal: doc.Subtotal, Tax: doc.Tax(), Total: doc.Total()},
	}
	for _, it := range doc.Items {
		p.Lines = append(p.Lines, PreviewLine{
			Description: it.Description,
			Quantity:    i18n.Number(lang, it.Quantity),
			UnitPrice:   i18n.Money(lang, it.UnitPrice),
			Total:       i18n.Money(lang, models.LineTotal(it)),
		})
	}
	p.Subtotal = i18n.Money(lang, p.Amounts.Subtotal)
	p.Tax = i18n.Money(lang, p.Amounts.Tax)
	p.Total = i18n.Money(lang, p.Amounts.Total)

	switch {
	case doc.IsQuote():
		p.Title = i18n.T(lang, "quote.title")
		if doc.ValidUntil != "" {
			p.ValidUntil = i18n.Date(lang, doc.ValidUntil)
			p.Footer = []string{i18n.Tf(lang, "quote.validity", p.ValidUntil)}
		}
	case doc.IsInvoice():
		p.Title = i18n.T(lang, "invoice.title")
		p.Footer = []string{i18n.T(lang, "invoice.payment_terms"), i18n.T(lang, "invoice.late_penalty")}
	}
	return p
}
