// Package contingency buffers documents that could not be transmitted
// synchronously. Queued documents are replayed oldest-first once the MH is
// reachable again, re-signed at replay time because the original signature may
// outlive its certificate session.
package contingency

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"facturador/internal/dte"
	domainerrors "facturador/pkg/domain-errors"
)

// State is a queued document's lifecycle position.
type State string

const (
	StateQueued     State = "queued"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

const (
	// maxAttempts caps automatic retransmissions before a document is
	// marked failed for good.
	maxAttempts = 5

	// errExcerptLen bounds the stored error message per attempt.
	errExcerptLen = 500
)

// QueuedDocument is one buffered document plus its retry bookkeeping.
type QueuedDocument struct {
	ID               string          `json:"id"`
	NITEmisor        string          `json:"nitEmisor"`
	Kind             dte.Kind        `json:"kind"`
	CodigoGeneracion string          `json:"codigoGeneracion"`
	NumeroControl    string          `json:"numeroControl"`
	Document         json.RawMessage `json:"document"`

	State         State     `json:"state"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"lastError,omitempty"`
	SelloRecibido string    `json:"selloRecibido,omitempty"`
	EnqueuedAt    time.Time `json:"enqueuedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewQueuedDocument wraps a built document for buffering.
func NewQueuedDocument(nitEmisor string, kind dte.Kind, codigoGeneracion, numeroControl string, doc json.RawMessage, now time.Time) *QueuedDocument {
	return &QueuedDocument{
		ID:               uuid.NewString(),
		NITEmisor:        nitEmisor,
		Kind:             kind,
		CodigoGeneracion: codigoGeneracion,
		NumeroControl:    numeroControl,
		Document:         doc,
		State:            StateQueued,
		EnqueuedAt:       now,
		UpdatedAt:        now,
	}
}

func notFound(id string) error {
	return domainerrors.Newf(domainerrors.CodeNotFound, "queued document %s not found", id)
}

func notCancelable(id string, state State) error {
	return domainerrors.Newf(domainerrors.CodeNotCancelable,
		"document %s is %s; only queued documents can be cancelled", id, state)
}

func notRetryable(id string, state State) error {
	return domainerrors.Newf(domainerrors.CodeNotRetryable,
		"document %s is %s; only failed or cancelled documents can be retried", id, state)
}

// resetForRetry puts a dead document back at the end of the queue with fresh
// retry bookkeeping.
func (d *QueuedDocument) resetForRetry(now time.Time) {
	d.State = StateQueued
	d.Attempts = 0
	d.LastError = ""
	d.EnqueuedAt = now
	d.UpdatedAt = now
}

// Stats counts documents per state.
type Stats struct {
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
}

// Total is the number of documents the store knows about.
func (s Stats) Total() int {
	return s.Queued + s.Processing + s.Completed + s.Failed + s.Cancelled
}

// Store persists queued documents. Implementations must make Dequeue and
// Cancel atomic with respect to each other so a document is never both
// cancelled and handed to a processor.
type Store interface {
	// Enqueue persists doc in the queued state.
	Enqueue(ctx context.Context, doc *QueuedDocument) error

	// Dequeue atomically moves up to limit of the oldest queued documents
	// to processing and returns them.
	Dequeue(ctx context.Context, limit int) ([]*QueuedDocument, error)

	// Update persists doc's current state and retry bookkeeping.
	Update(ctx context.Context, doc *QueuedDocument) error

	// Get returns one document by ID; not_found when unknown.
	Get(ctx context.Context, id string) (*QueuedDocument, error)

	// Cancel moves a document from queued to cancelled. Any other state
	// fails with not_cancelable.
	Cancel(ctx context.Context, id string) error

	// Retry moves a failed or cancelled document back to the end of the
	// queue with its attempt counter reset. Any other state fails with
	// not_retryable.
	Retry(ctx context.Context, id string) error

	// List returns up to limit documents in the given state, oldest first.
	// An empty state matches every document.
	List(ctx context.Context, state State, limit int) ([]*QueuedDocument, error)

	// Stats counts documents per state.
	Stats(ctx context.Context) (Stats, error)
}
