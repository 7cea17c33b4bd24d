package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/storage"
	"github.com/diewo77/go-devis/internal/store"
)

// Profile field names accepted by UpdateProfile.
const (
	ProfileCompanyName = "company_name"
	ProfileAddress     = "address"
	ProfilePhone       = "phone"
	ProfileEmail       = "email"
	ProfileSIRET       = "siret"
	ProfileLogo        = "logo"
)

// DocumentSummary is the dashboard view of a document.
type DocumentSummary struct {
	ID         string      `json:"id"`
	Kind       models.Kind `json:"type"`
	Number     string      `json:"number"`
	ClientName string      `json:"client_name"`
	IssueDate  string      `json:"issue_date"`
	Subtotal   float64     `json:"subtotal"`
	Total      float64     `json:"total"`
}

// Dashboard aggregates counts, revenue and the latest documents.
type Dashboard struct {
	QuoteCount     int               `json:"quote_count"`
	InvoiceCount   int               `json:"invoice_count"`
	Revenue        float64           `json:"revenue"`
	RecentQuotes   []DocumentSummary `json:"recent_quotes"`
	RecentInvoices []DocumentSummary `json:"recent_invoices"`
}

// Option customizes a Workspace.
type Option func(*Workspace)

// WithClock overrides the time source used for draft dates.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// WithIDFunc overrides document id generation.
func WithIDFunc(f IDFunc) Option {
	return func(w *Workspace) { w.newID = f }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.log = l
		}
	}
}

// Workspace owns the whole application state: profile, committed documents, session
// flag and the draft being edited. Every operation runs under one lock, and every
// mutation of persisted state ends with an explicit snapshot save. A failed save is
// returned to the caller as a *storage.PersistenceError while the in-memory change stays.
type Workspace struct {
	mu        sync.Mutex
	snapshots *storage.Snapshots
	log       *zap.Logger
	now       func() time.Time
	newID     IDFunc

	profile models.CompanyProfile
	docs    *store.Store
	session bool
	draft   Draft
}

// NewWorkspace returns a blank workspace bound to a snapshot store. Call Load to
// restore the previous state.
func NewWorkspace(snapshots *storage.Snapshots, opts ...Option) *Workspace {
	w := &Workspace{
		snapshots: snapshots,
		log:       zap.NewNop(),
		now:       time.Now,
		newID:     NewDocumentID,
		docs:      store.New(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.draft = StartDraft(models.KindQuote, w.now())
	return w
}

// Load restores the last snapshot. A first run (no snapshot) is not an error. On any
// other failure the blank state is kept and the error returned.
func (w *Workspace) Load(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap, err := w.snapshots.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		w.log.Info("no snapshot found, starting fresh", zap.String("key", w.snapshots.Key()))
		return nil
	}
	if err != nil {
		w.log.Warn("snapshot load failed, continuing with empty state", zap.Error(err))
		return err
	}
	w.profile = snap.Profile
	w.docs = store.FromSnapshot(snap.Quotes, snap.Invoices)
	w.session = snap.SessionActive
	w.log.Info("snapshot restored",
		zap.Int("quotes", w.docs.Count(models.KindQuote)),
		zap.Int("invoices", w.docs.Count(models.KindInvoice)),
		zap.Bool("session_active", w.session))
	return nil
}

// Snapshot returns the current persistable state.
func (w *Workspace) Snapshot() models.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Ping checks the storage backend.
func (w *Workspace) Ping(ctx context.Context) error {
	return w.snapshots.Ping(ctx)
}

func (w *Workspace) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Profile:       w.profile,
		Quotes:        w.docs.List(models.KindQuote),
		Invoices:      w.docs.List(models.KindInvoice),
		SessionActive: w.session,
	}
}

func (w *Workspace) persistLocked(ctx context.Context, op string) error {
	if err := w.snapshots.Save(ctx, w.snapshotLocked()); err != nil {
		w.log.Warn("snapshot not saved", zap.String("op", op), zap.Error(err))
		return err
	}
	w.log.Debug("snapshot saved", zap.String("op", op))
	return nil
}

// Login opens the session. There are no credentials: the login screen is a gate only.
func (w *Workspace) Login(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session = true
	return w.persistLocked(ctx, "login")
}

// Logout closes the session.
func (w *Workspace) Logout(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session = false
	return w.persistLocked(ctx, "logout")
}

// SessionActive reports whether the user is logged in.
func (w *Workspace) SessionActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// Profile returns the company profile.
func (w *Workspace) Profile() models.CompanyProfile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

// UpdateProfile applies a set of field changes at once. Unknown fields or a logo that is
// not an image data URI reject the whole change.
func (w *Workspace) UpdateProfile(ctx context.Context, changes map[string]string) (models.CompanyProfile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.profile
	for field, value := range changes {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case ProfileCompanyName, "companyname":
			next.CompanyName = value
		case ProfileAddress:
			next.Address = value
		case ProfilePhone:
			next.Phone = value
		case ProfileEmail:
			next.Email = value
		case ProfileSIRET:
			next.SIRET = value
		case ProfileLogo:
			if err := ValidateLogo(value); err != nil {
				return w.profile, err
			}
			next.Logo = value
		default:
			return w.profile, fmt.Errorf("profile field %q: %w", field, ErrUnknownField)
		}
	}
	w.profile = next
	return next, w.persistLocked(ctx, "profile")
}

// SetLogo replaces the logo with an image data URI.
func (w *Workspace) SetLogo(ctx context.Context, dataURI string) (models.CompanyProfile, error) {
	return w.UpdateProfile(ctx, map[string]string{ProfileLogo: dataURI})
}

// Draft returns the draft being edited.
func (w *Workspace) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// StartDraft discards the current draft and opens a blank one of the given kind.
func (w *Workspace) StartDraft(kind models.Kind) (Draft, error) {
	if !kind.Valid() {
		return Draft{}, fmt.Errorf("start draft: %w", models.ErrUnknownKind)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = StartDraft(kind, w.now())
	return w.draft, nil
}

// EditDraft applies an edit to the draft. When the edit fails the draft is unchanged.
// Drafts are not part of the snapshot, so nothing is persisted here.
func (w *Workspace) EditDraft(edit func(Draft) (Draft, error)) (Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := edit(w.draft)
	if err != nil {
		return w.draft, err
	}
	w.draft = next
	return next, nil
}

// Commit numbers and stores the current draft, resets the editor to a blank quote and
// saves the snapshot. The returned document is committed even when the save fails.
func (w *Workspace) Commit(ctx context.Context) (models.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc, err := Commit(w.draft, w.docs, w.newID)
	if err != nil {
		return models.Document{}, err
	}
	w.draft = StartDraft(models.KindQuote, w.now())
	w.log.Info("document committed",
		zap.String("id", doc.ID),
		zap.String("number", doc.Number),
		zap.Int("items", len(doc.Items)),
		zap.Float64("subtotal", doc.Subtotal))
	return doc, w.persistLocked(ctx, "commit")
}

// Documents lists the committed documents of a kind in creation order.
func (w *Workspace) Documents(kind models.Kind) []models.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	docs := w.docs.List(kind)
	if docs == nil {
		return []models.Document{}
	}
	return docs
}

// Find returns a committed document by id.
func (w *Workspace) Find(id string) (models.Document, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.docs.Find(id)
}

// Preview returns the print values of a committed document.
func (w *Workspace) Preview(id, lang string) (Preview, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc, ok := w.docs.Find(id)
	if !ok {
		return Preview{}, false
	}
	return BuildPreview(doc, w.profile, lang), true
}

// Dashboard summarizes the store.
func (w *Workspace) Dashboard() Dashboard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Dashboard{
		QuoteCount:     w.docs.Count(models.KindQuote),
		InvoiceCount:   w.docs.Count(models.KindInvoice),
		Revenue:        w.docs.RevenueTotal(),
		RecentQuotes:   summarize(w.docs.Recent(models.KindQuote, store.DefaultRecent)),
		RecentInvoices: summarize(w.docs.Recent(models.KindInvoice, store.DefaultRecent)),
	}
}

func summarize(docs []models.Document) []DocumentSummary {
	out := make([]DocumentSummary, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		out = append(out, DocumentSummary{
			ID:         d.ID,
			Kind:       d.Kind,
			Number:     d.Number,
			ClientName: d.ClientName,
			IssueDate:  d.IssueDate,
			Subtotal:   d.Subtotal,
			Total:      d.Total(),
		})
	}
	return out
}
