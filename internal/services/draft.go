package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-devis/internal/models"
)

var (
	// ErrIndexOutOfRange is returned when a line-item index does not exist in the draft.
	ErrIndexOutOfRange = errors.New("index_out_of_range")
	// ErrUnknownField is returned for a field name the draft does not have.
	ErrUnknownField = errors.New("unknown_field")
	// ErrInvalidValue is returned when a numeric field receives something that is not a finite number.
	ErrInvalidValue = errors.New("invalid_value")
	// ErrAmountOverflow is returned when amounts no longer fit in a finite total.
	ErrAmountOverflow = fmt.Errorf("amount overflow: %w", ErrInvalidValue)
)

// Item field names accepted by UpdateLineItem.
const (
	ItemDescription = "description"
	ItemQuantity    = "quantity"
	ItemUnitPrice   = "unit_price"
)

// Draft field names accepted by SetField.
const (
	FieldKind          = "type"
	FieldClientName    = "client_name"
	FieldClientAddress = "client_address"
	FieldClientEmail   = "client_email"
	FieldIssueDate     = "issue_date"
	FieldValidUntil    = "valid_until"
)

// Draft is the document being edited. Every edit returns a new Draft and leaves the
// receiver untouched, so a rejected edit never leaves a half-applied change behind.
type Draft struct {
	Kind          models.Kind       `json:"type"`
	ClientName    string            `json:"client_name"`
	ClientAddress string            `json:"client_address"`
	ClientEmail   string            `json:"client_email"`
	Items         []models.LineItem `json:"items"`
	IssueDate     string            `json:"issue_date"`
	ValidUntil    string            `json:"valid_until"`
}

// StartDraft opens a blank draft of the given kind dated today (UTC).
func StartDraft(kind models.Kind, now time.Time) Draft {
	return Draft{
		Kind:      kind,
		Items:     []models.LineItem{models.NewLineItem()},
		IssueDate: now.UTC().Format(time.DateOnly),
	}
}

// Totals returns the live HT/TVA/TTC of the draft.
func (d Draft) Totals() models.Totals {
	return models.ComputeTotals(d.Items)
}

// AddLineItem appends one blank row.
func (d Draft) AddLineItem() Draft {
	d.Items = append(d.cloneItems(), models.NewLineItem())
	return d
}

// UpdateLineItem replaces one field of the item at index. Numeric fields are parsed
// from their text form.
func (d Draft) UpdateLineItem(index int, field, value string) (Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, fmt.Errorf("update item %d of %d: %w", index, len(d.Items), ErrIndexOutOfRange)
	}
	items := d.cloneItems()
	item := &items[index]
	switch strings.ToLower(strings.TrimSpace(field)) {
	case ItemDescription:
		item.Description = value
	case ItemQuantity:
		n, err := parseAmount(value)
		if err != nil {
			return d, fmt.Errorf("quantity: %w", err)
		}
		item.Quantity = n
	case ItemUnitPrice, "price", "unitprice":
		n, err := parseAmount(value)
		if err != nil {
			return d, fmt.Errorf("unit price: %w", err)
		}
		item.UnitPrice = n
	default:
		return d, fmt.Errorf("item field %q: %w", field, ErrUnknownField)
	}
	if !finite(models.LineTotal(*item)) {
		return d, fmt.Errorf("item %d: %w", index, ErrAmountOverflow)
	}
	if err := checkTotals(items); err != nil {
		return d, err
	}
	d.Items = items
	return d, nil
}

// RemoveLineItem drops the item at index. Removing the last row leaves an empty list.
func (d Draft) RemoveLineItem(index int) (Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, fmt.Errorf("remove item %d of %d: %w", index, len(d.Items), ErrIndexOutOfRange)
	}
	items := make([]models.LineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:index]...)
	items = append(items, d.Items[index+1:]...)
	if err := checkTotals(items); err != nil {
		return d, err
	}
	d.Items = items
	return d, nil
}

// SetField sets a client or date attribute, or switches the document kind. Content is
// not validated: empty strings and malformed emails or dates are kept verbatim.
func (d Draft) SetField(name, value string) (Draft, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FieldKind, "kind":
		kind, err := models.ParseKind(value)
		if err != nil {
			return d, err
		}
		d.Kind = kind
	case FieldClientName:
		d.ClientName = value
	case FieldClientAddress:
		d.ClientAddress = value
	case FieldClientEmail:
		d.ClientEmail = value
	case FieldIssueDate, "date":
		d.IssueDate = value
	case FieldValidUntil:
		d.ValidUntil = value
	default:
		return d, fmt.Errorf("field %q: %w", name, ErrUnknownField)
	}
	d.Items = d.cloneItems()
	return d, nil
}

func (d Draft) cloneItems() []models.LineItem {
	out := make([]models.LineItem, len(d.Items))
	copy(out, d.Items)
	return out
}

// checkTotals rejects item lists whose HT or TTC is not a finite number.
func checkTotals(items []models.LineItem) error {
	if !finite(models.GrandTotal(models.Subtotal(items))) {
		return ErrAmountOverflow
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseAmount accepts "12.5" as well as the French "12,5".
func parseAmount(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(n) {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidValue)
	}
	return n, nil
}
