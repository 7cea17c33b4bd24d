package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("field", "  ", v)
	if v["field"] != "required" {
		t.Fatalf("expected required violation, got %v", v)
	}
	v = Violations{}
	Required("field", "x", v)
	if !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("type", " Invoice ", []string{"quote", "invoice"}, v)
	if !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
	OneOf("type", "receipt", []string{"quote", "invoice"}, v)
	if v["type"] != "not_allowed" {
		t.Fatalf("expected not_allowed, got %v", v)
	}
}

func TestIndex(t *testing.T) {
	v := Violations{}
	if got := Index("index", "3", v); got != 3 || !v.Empty() {
		t.Fatalf("Index(3) = %d, %v", got, v)
	}
	if got := Index("index", "-1", v); got != -1 || !v.Empty() {
		t.Fatalf("Index(-1) = %d, %v", got, v)
	}
	for _, raw := range []string{"x", "", "1.5"} {
		v := Violations{}
		if got := Index("index", raw, v); got != -1 || v["index"] != "invalid_index" {
			t.Errorf("Index(%q) = %d, %v", raw, got, v)
		}
	}
}
