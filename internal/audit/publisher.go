package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Sink receives audit events. Implementations: Kafka for production, memory
// for tests.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

const defaultBuffer = 256

// Publisher buffers events in a channel and drains them to a sink from a
// background loop, so Emit never blocks the request path. A full buffer drops
// the event rather than stall a transmission.
type Publisher struct {
	sink  Sink
	log   *log.Logger
	inbox chan Event
	now   func() time.Time
}

type PublisherOption func(*Publisher)

// WithBuffer resizes the inbox.
func WithBuffer(n int) PublisherOption {
	return func(p *Publisher) { p.inbox = make(chan Event, n) }
}

// WithClock fixes the event timestamp clock.
func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) { p.now = now }
}

func NewPublisher(sink Sink, logger *log.Logger, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:  sink,
		log:   logger,
		inbox: make(chan Event, defaultBuffer),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps and enqueues an event. Never blocks, never fails the caller.
func (p *Publisher) Emit(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	select {
	case p.inbox <- event:
	default:
		p.log.Printf("audit buffer full, dropping event action=%s codGen=%s",
			event.Action, event.CodigoGeneracion)
	}
}

// Run drains the inbox until ctx is cancelled, then flushes what is left.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.flush()
			return ctx.Err()
		case event := <-p.inbox:
			p.publish(ctx, event)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, event Event) {
	if err := p.sink.Publish(ctx, event); err != nil {
		// Fail-open: log and move on.
		p.log.Printf("publishing audit event %s failed: %v", event.ID, err)
	}
}

func (p *Publisher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-p.inbox:
			p.publish(ctx, event)
		default:
			return
		}
	}
}
