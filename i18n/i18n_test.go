package i18n

import (
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr fallback")
	}
	if DetectLanguage("") != "fr" {
		t.Fatalf("expected default fr")
	}
	if DetectLanguage("es-ES") != "fr" {
		t.Fatalf("expected fr for unsupported language")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to fr translation if exists
	if T("es", "required") != "Requis" {
		t.Fatalf("expected fr fallback for es lang")
	}
	if got := Tf("fr", "quote.validity", "01/11/2026"); got != "Ce devis est valable jusqu'au 01/11/2026." {
		t.Fatalf("unexpected validity sentence %q", got)
	}
}

func TestMoney(t *testing.T) {
	if got := Money("fr", 25); got != "25,00 €" {
		t.Fatalf("Money(fr, 25) = %q", got)
	}
	if got := Money("en", 30); got != "30.00 €" {
		t.Fatalf("Money(en, 30) = %q", got)
	}
	if got := Money("fr", 1234.5); !strings.HasSuffix(got, "234,50 €") {
		t.Fatalf("Money(fr, 1234.5) = %q", got)
	}
}

func TestNumber(t *testing.T) {
	if got := Number("fr", 2); got != "2" {
		t.Fatalf("Number(fr, 2) = %q", got)
	}
	tests := []struct {
		lang string
		in   float64
		want string
	}{
		{"fr", 1.5, "1,5"},
		{"en", 1.5, "1.5"},
		{"fr", 0.25, "0,25"},
		{"fr", 2.999, "3"},
	}
	for _, tt := range tests {
		if got := Number(tt.lang, tt.in); got != tt.want {
			t.Errorf("Number(%s, %v) = %q, want %q", tt.lang, tt.in, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date("fr", "2026-10-17"); got != "17/10/2026" {
		t.Fatalf("Date(fr) = %q", got)
	}
	if got := Date("en", "2026-10-17"); got != "10/17/2026" {
		t.Fatalf("Date(en) = %q", got)
	}
	if got := Date("fr", "bientôt"); got != "bientôt" {
		t.Fatalf("malformed dates must be kept, got %q", got)
	}
}
