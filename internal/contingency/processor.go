package contingency

import (
	"context"
	"log"
	"time"

	"facturador/internal/audit"
	"facturador/internal/contingency/metrics"
	"facturador/internal/dte"
	"facturador/internal/mh"
	"facturador/internal/sign"
	domainerrors "facturador/pkg/domain-errors"
)

// Signer re-signs a buffered document's canonical bytes at replay time.
type Signer interface {
	SignRaw(session *sign.CertificateSession, payload []byte) (string, error)
}

// Transmitter retransmits a signed document to the MH.
type Transmitter interface {
	Transmit(ctx context.Context, token *mh.TokenInfo, kind dte.Kind, signedDoc, codigoGeneracion string) (*mh.Receipt, error)
}

// AuditPublisher records replay outcomes. Emission is fail-open.
type AuditPublisher interface {
	Emit(event audit.Event)
}

// Processor replays queued documents through the sign+transmit pipeline.
type Processor struct {
	store    Store
	signer   Signer
	transmit Transmitter
	log      *log.Logger
	metrics  *metrics.Metrics
	audit    AuditPublisher
	now      func() time.Time
}

type ProcessorOption func(*Processor)

// WithMetrics attaches queue metrics.
func WithMetrics(m *metrics.Metrics) ProcessorOption {
	return func(p *Processor) { p.metrics = m }
}

// WithClock fixes the retry bookkeeping clock.
func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) { p.now = now }
}

// WithAuditPublisher records replay outcomes for compliance review.
func WithAuditPublisher(a AuditPublisher) ProcessorOption {
	return func(p *Processor) { p.audit = a }
}

func NewProcessor(store Store, signer Signer, transmit Transmitter, logger *log.Logger, opts ...ProcessorOption) *Processor {
	p := &Processor{
		store:    store,
		signer:   signer,
		transmit: transmit,
		log:      logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BatchResult summarizes one replay pass.
type BatchResult struct {
	Processed int
	Completed int
	Requeued  int
	Failed    int
}

// ProcessBatch claims up to limit of the oldest queued documents, re-signs
// each with cert and retransmits with token. A document that keeps failing is
// requeued until it burns through its attempt budget, then marked failed and
// never picked up again.
func (p *Processor) ProcessBatch(ctx context.Context, token *mh.TokenInfo, cert *sign.CertificateSession, limit int) (BatchResult, error) {
	docs, err := p.store.Dequeue(ctx, limit)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, doc := range docs {
		result.Processed++
		switch p.replay(ctx, token, cert, doc) {
		case StateCompleted:
			result.Completed++
		case StateQueued:
			result.Requeued++
		case StateFailed:
			result.Failed++
		}
	}

	if stats, err := p.store.Stats(ctx); err == nil {
		p.metrics.SetQueueDepth(stats.Queued)
	}
	return result, nil
}

func (p *Processor) replay(ctx context.Context, token *mh.TokenInfo, cert *sign.CertificateSession, doc *QueuedDocument) State {
	doc.Attempts++
	doc.UpdatedAt = p.now()

	signed, err := p.signer.SignRaw(cert, doc.Document)
	if err == nil {
		var receipt *mh.Receipt
		receipt, err = p.transmit.Transmit(ctx, token, doc.Kind, signed, doc.CodigoGeneracion)
		if err == nil && !receipt.Accepted() {
			err = rejectionError(receipt)
		}
		if err == nil {
			doc.State = StateCompleted
			doc.SelloRecibido = receipt.SelloRecibido
			doc.LastError = ""
			p.metrics.IncrementReplays("completed")
			p.log.Printf("contingency replay accepted: codGen=%s sello=%s attempts=%d",
				doc.CodigoGeneracion, receipt.SelloRecibido, doc.Attempts)
			p.emit(audit.ActionDocumentReplayed, doc)
			p.persist(ctx, doc)
			return doc.State
		}
	}

	doc.LastError = truncateError(err)
	if doc.Attempts >= maxAttempts {
		doc.State = StateFailed
		p.metrics.IncrementReplays("failed")
		p.log.Printf("contingency replay giving up: codGen=%s attempts=%d err=%v",
			doc.CodigoGeneracion, doc.Attempts, err)
		p.emit(audit.ActionDocumentFailed, doc)
	} else {
		doc.State = StateQueued
		p.metrics.IncrementReplays("requeued")
		p.log.Printf("contingency replay failed: codGen=%s attempt=%d/%d err=%v",
			doc.CodigoGeneracion, doc.Attempts, maxAttempts, err)
	}
	p.persist(ctx, doc)
	return doc.State
}

func (p *Processor) emit(action audit.Action, doc *QueuedDocument) {
	if p.audit == nil {
		return
	}
	p.audit.Emit(audit.Event{
		Action:           action,
		NIT:              doc.NITEmisor,
		Kind:             doc.Kind.String(),
		CodigoGeneracion: doc.CodigoGeneracion,
		SelloRecibido:    doc.SelloRecibido,
		Detail:           doc.LastError,
	})
}

func (p *Processor) persist(ctx context.Context, doc *QueuedDocument) {
	if err := p.store.Update(ctx, doc); err != nil {
		p.log.Printf("persisting queued document %s failed: %v", doc.ID, err)
	}
}

func rejectionError(receipt *mh.Receipt) error {
	msg := receipt.DescripcionMsg
	if msg == "" {
		msg = "estado " + receipt.Estado
	}
	return domainerrors.New(domainerrors.CodeRejected, "MH rejected the replayed document: "+msg).
		WithObservations(receipt.Observaciones)
}

func truncateError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > errExcerptLen {
		return msg[:errExcerptLen]
	}
	return msg
}
