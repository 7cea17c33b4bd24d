// Package i18n holds the French/English labels printed on documents and the
// locale-aware formatting of amounts and dates.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default is the language used when nothing better is known.
const Default = "fr"

var matcher = language.NewMatcher([]language.Tag{language.French, language.English})

var messages = map[string]map[string]string{
	"fr": {
		"required":              "Requis",
		"quote.title":           "DEVIS",
		"invoice.title":         "FACTURE",
		"number":                "N°",
		"date":                  "Date",
		"valid_until":           "Valable jusqu'au",
		"client":                "Client",
		"description":           "Description",
		"quantity":              "Quantité",
		"unit_price":            "Prix unitaire",
		"line_total":            "Total HT",
		"subtotal":              "Total HT",
		"tax":                   "TVA (20%)",
		"total":                 "Total TTC",
		"siret":                 "SIRET",
		"quote.validity":        "Ce devis est valable jusqu'au %s.",
		"invoice.payment_terms": "Conditions de paiement: 30 jours",
		"invoice.late_penalty":  "En cas de retard de paiement, une pénalité de 3 fois le taux d'intérêt légal sera appliquée.",
		"dashboard":             "Tableau de bord",
		"quotes":                "Devis",
		"invoices":              "Factures",
		"revenue":               "Chiffre d'affaires",
		"recent_quotes":         "Derniers devis",
		"recent_invoices":       "Dernières factures",
		"no_documents":          "Aucun document",
		"print":                 "Imprimer / PDF",
		"index_out_of_range":    "Ligne inexistante",
		"unknown_field":         "Champ inconnu",
		"invalid_value":         "Valeur invalide",
		"not_an_image":          "Le fichier n'est pas une image",
		"persistence_failed":    "Les modifications n'ont pas pu être enregistrées",
		"login":                 "Connexion",
		"login.submit":          "Entrer",
		"logout":                "Déconnexion",
		"profile":               "Profil",
		"draft":                 "Brouillon",
		"draft.commit":          "Enregistrer",
		"unauthorized":          "Session inactive",
		"not_found":             "Document introuvable",
	},
	"en": {
		"required":              "Required",
		"quote.title":           "QUOTE",
		"invoice.title":         "INVOICE",
		"number":                "No.",
		"date":                  "Date",
		"valid_until":           "Valid until",
		"client":                "Client",
		"description":           "Description",
		"quantity":              "Quantity",
		"unit_price":            "Unit price",
		"line_total":            "Total excl. VAT",
		"subtotal":              "Total excl. VAT",
		"tax":                   "VAT (20%)",
		"total":                 "Total incl. VAT",
		"siret":                 "SIRET",
		"quote.validity":        "This quote is valid until %s.",
		"invoice.payment_terms": "Payment terms: 30 days",
		"invoice.late_penalty":  "Late payments incur a penalty of three times the legal interest rate.",
		"dashboard":             "Dashboard",
		"quotes":                "Quotes",
		"invoices":              "Invoices",
		"revenue":               "Revenue",
		"recent_quotes":         "Recent quotes",
		"recent_invoices":       "Recent invoices",
		"no_documents":          "No documents yet",
		"print":                 "Print / PDF",
		"index_out_of_range":    "No such line",
		"unknown_field":         "Unknown field",
		"invalid_value":         "Invalid value",
		"not_an_image":          "The file is not an image",
		"persistence_failed":    "Changes could not be saved",
		"login":                 "Login",
		"login.submit":          "Enter",
		"logout":                "Log out",
		"profile":               "Profile",
		"draft":                 "Draft",
		"draft.commit":          "Save",
		"unauthorized":          "Session inactive",
		"not_found":             "Document not found",
	},
}

// DetectLanguage picks fr or en from an Accept-Language header, defaulting to fr.
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	tag, _, _ := matcher.Match(tags...)
	if base, _ := tag.Base(); base.String() == "en" {
		return "en"
	}
	return Default
}

// Normalize maps anything unsupported to the default language.
func Normalize(lang string) string {
	if _, ok := messages[lang]; ok {
		return lang
	}
	return Default
}

// T translates a code. Unknown languages fall back to French, unknown codes to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[Default][code]; ok {
		return s
	}
	return code
}

// Tf translates a code and formats it with args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

func printer(lang string) *message.Printer {
	if Normalize(lang) == "en" {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(language.French)
}

// Money formats an amount in euros with two decimals using the locale's separators.
func Money(lang string, v float64) string {
	return printer(lang).Sprintf("%.2f €", v)
}

// Number formats a quantity with at most two decimals and no trailing zeros (2, 1.5 or 1,5).
func Number(lang string, v float64) string {
	if v == float64(int64(v)) {
		return printer(lang).Sprintf("%d", int64(v))
	}
	s := strings.TrimRight(printer(lang).Sprintf("%.2f", v), "0")
	return strings.TrimRight(s, ".,")
}

// Date renders a YYYY-MM-DD date the way the locale prints it (dd/mm/yyyy in French).
// Values that do not parse are returned unchanged.
func Date(lang, iso string) string {
	d, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	if Normalize(lang) == "en" {
		return d.Format("01/02/2006")
	}
	return d.Format("02/01/2006")
}
