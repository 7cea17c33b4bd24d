package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
)

// IDFunc produces document identifiers.
type IDFunc func() string

// NewDocumentID returns a UUIDv7: unique and ordered by creation time.
func NewDocumentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NextNumber returns the number the next document of a kind receives: 1 + how many
// documents of that kind already exist.
func NextNumber(s *store.Store, kind models.Kind) string {
	return models.FormatNumber(kind, s.Count(kind)+1)
}

// Commit freezes a draft into a document and appends it to the store. This is the
// only place a subtotal is written onto a document.
func Commit(d Draft, s *store.Store, newID IDFunc) (models.Document, error) {
	if !d.Kind.Valid() {
		return models.Document{}, fmt.Errorf("commit draft: %w", models.ErrUnknownKind)
	}
	if newID == nil {
		newID = NewDocumentID
	}
	items := make([]models.LineItem, len(d.Items))
	copy(items, d.Items)
	if err := checkTotals(items); err != nil {
		return models.Document{}, fmt.Errorf("commit draft: %w", err)
	}

	doc := models.Document{
		ID:            newID(),
		Kind:          d.Kind,
		Number:        NextNumber(s, d.Kind),
		ClientName:    d.ClientName,
		ClientAddress: d.ClientAddress,
		ClientEmail:   d.ClientEmail,
		Items:         items,
		IssueDate:     d.IssueDate,
		Subtotal:      models.Subtotal(items),
	}
	// validity dates only mean something on quotes
	if doc.IsQuote() {
		doc.ValidUntil = d.ValidUntil
	}
	if err := s.Append(doc); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}
