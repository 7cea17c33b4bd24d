// Package store keeps the committed quotes and invoices in memory. It is the source
// of truth for dashboard summaries and previews; persistence goes through snapshots.
package store

import (
	"fmt"

	"github.com/diewo77/go-devis/internal/models"
)

// DefaultRecent is the number of documents shown per kind on the dashboard.
const DefaultRecent = 5

// Store holds append-only collections of documents. It is not safe for concurrent
// use; the owning workspace serializes access.
type Store struct {
	quotes   []models.Document
	invoices []models.Document
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// FromSnapshot rebuilds a store from persisted collections. The slices are copied.
func FromSnapshot(quotes, invoices []models.Document) *Store {
	return &Store{quotes: cloneDocs(quotes), invoices: cloneDocs(invoices)}
}

// Append adds a committed document to the collection matching its kind.
func (s *Store) Append(doc models.Document) error {
	switch doc.Kind {
	case models.KindQuote:
		s.quotes = append(s.quotes, cloneDoc(doc))
	case models.KindInvoice:
		s.invoices = append(s.invoices, cloneDoc(doc))
	default:
		return fmt.Errorf("append %q: %w", doc.Kind, models.ErrUnknownKind)
	}
	return nil
}

// Count returns the number of documents of a kind.
func (s *Store) Count(kind models.Kind) int {
	return len(s.collection(kind))
}

// List returns a copy of every document of a kind in creation order.
func (s *Store) List(kind models.Kind) []models.Document {
	return cloneDocs(s.collection(kind))
}

// Recent returns the last n documents of a kind, most recent first.
func (s *Store) Recent(kind models.Kind, n int) []models.Document {
	docs := s.collection(kind)
	if n <= 0 || len(docs) == 0 {
		return []models.Document{}
	}
	if n > len(docs) {
		n = len(docs)
	}
	out := make([]models.Document, 0, n)
	for i := len(docs) - 1; i >= len(docs)-n; i-- {
		out = append(out, cloneDoc(docs[i]))
	}
	return out
}

// Find looks a document up by id across both collections.
func (s *Store) Find(id string) (models.Document, bool) {
	for _, kind := range models.Kinds {
		for _, d := range s.collection(kind) {
			if d.ID == id {
				return cloneDoc(d), true
			}
		}
	}
	return models.Document{}, false
}

// RevenueTotal sums the tax-inclusive totals of every invoice. Quotes are not revenue.
func (s *Store) RevenueTotal() float64 {
	var total float64
	for i := range s.invoices {
		total += s.invoices[i].Total()
	}
	return total
}

func (s *Store) collection(kind models.Kind) []models.Document {
	switch kind {
	case models.KindQuote:
		return s.quotes
	case models.KindInvoice:
		return s.invoices
	}
	return nil
}

func cloneDocs(in []models.Document) []models.Document {
	if in == nil {
		return nil
	}
	out := make([]models.Document, len(in))
	for i := range in {
		out[i] = cloneDoc(in[i])
	}
	return out
}

// cloneDoc copies the items slice so callers cannot reach into frozen documents.
func cloneDoc(d models.Document) models.Document {
	if d.Items != nil {
		d.Items = append([]models.LineItem(nil), d.Items...)
		if d.Items == nil {
			d.Items = []models.LineItem{}
		}
	}
	return d
}
