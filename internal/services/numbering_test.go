package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestNewDocumentIDIsUUIDv7(t *testing.T) {
	a, b := NewDocumentID(), NewDocumentID()
	require.NotEqual(t, a, b)
	u, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}

func TestCommitNumbersPerKind(t *testing.T) {
	s := store.New()
	ids := sequentialIDs()
	var numbers []string
	for _, kind := range []models.Kind{models.KindQuote, models.KindInvoice, models.KindQuote, models.KindInvoice, models.KindQuote} {
		doc, err := Commit(StartDraft(kind, fixedNow), s, ids)
		require.NoError(t, err)
		numbers = append(numbers, doc.Number)
	}
	assert.Equal(t, []string{"DEV-1", "FACT-1", "DEV-2", "FACT-2", "DEV-3"}, numbers)
	assert.Equal(t, "DEV-4", NextNumber(s, models.KindQuote))
	assert.Equal(t, "FACT-3", NextNumber(s, models.KindInvoice))
}

func TestCommitFreezesDraft(t *testing.T) {
	s := store.New()
	d := StartDraft(models.KindQuote, fixedNow)
	d, _ = d.UpdateLineItem(0, ItemQuantity, "2")
	d, _ = d.UpdateLineItem(0, ItemUnitPrice, "10")
	d, _ = d.SetField(FieldValidUntil, "2024-04-15")

	doc, err := Commit(d, s, sequentialIDs())
	require.NoError(t, err)
	assert.Equal(t, "id-1", doc.ID)
	assert.Equal(t, 20.0, doc.Subtotal)
	assert.Equal(t, "2024-04-15", doc.ValidUntil)

	d.Items[0].UnitPrice = 1000
	stored, ok := s.Find("id-1")
	require.True(t, ok)
	assert.Equal(t, 10.0, stored.Items[0].UnitPrice)
	assert.Equal(t, 20.0, stored.Subtotal)
}

func TestCommitInvoiceDropsValidity(t *testing.T) {
	d := StartDraft(models.KindQuote, fixedNow)
	d, _ = d.SetField(FieldValidUntil, "2024-04-15")
	d, _ = d.SetField(FieldKind, "invoice")
	doc, err := Commit(d, store.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, doc.ValidUntil)
	assert.NotEmpty(t, doc.ID)
}

func TestCommitEmptyDraft(t *testing.T) {
	d, err := StartDraft(models.KindQuote, fixedNow).RemoveLineItem(0)
	require.NoError(t, err)
	doc, err := Commit(d, store.New(), sequentialIDs())
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
	assert.Equal(t, 0.0, doc.Subtotal)
	assert.Equal(t, "DEV-1", doc.Number)
}

func TestCommitRejectsNonFiniteSubtotal(t *testing.T) {
	s := store.New()
	d := StartDraft(models.KindInvoice, fixedNow)
	d.Items[0] = models.LineItem{Description: "x", Quantity: 1e200, UnitPrice: 1e200}
	_, err := Commit(d, s, sequentialIDs())
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Zero(t, s.Count(models.KindInvoice))
}

func TestCommitRejectsUnknownKind(t *testing.T) {
	s := store.New()
	_, err := Commit(Draft{Kind: "receipt"}, s, sequentialIDs())
	assert.ErrorIs(t, err, models.ErrUnknownKind)
	assert.Zero(t, s.Count(models.KindQuote))
}
