package audit

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestPublisherDrainsToSink(t *testing.T) {
	sink := NewMemorySink()
	pub := NewPublisher(sink, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		pub.Run(ctx)
	}()

	pub.Emit(Event{Action: ActionDocumentTransmitted, NIT: "0614-123456-001-2", CodigoGeneracion: "A"})
	pub.Emit(Event{Action: ActionDocumentRejected, NIT: "0614-123456-001-2", CodigoGeneracion: "B"})

	require.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	events := sink.ByNIT("0614-123456-001-2")
	require.Len(t, events, 2)
	assert.Equal(t, ActionDocumentTransmitted, events[0].Action)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisherFlushesOnShutdown(t *testing.T) {
	sink := NewMemorySink()
	pub := NewPublisher(sink, testLogger())

	// Emit before the loop starts; events sit in the buffer.
	pub.Emit(Event{Action: ActionDocumentQueued, CodigoGeneracion: "A"})
	pub.Emit(Event{Action: ActionDocumentFailed, CodigoGeneracion: "B"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sink.Events(), 2)
}

func TestPublisherDropsWhenBufferFull(t *testing.T) {
	sink := NewMemorySink()
	pub := NewPublisher(sink, testLogger(), WithBuffer(1))

	// No Run loop; the second event has nowhere to go.
	pub.Emit(Event{Action: ActionDocumentQueued, CodigoGeneracion: "A"})
	pub.Emit(Event{Action: ActionDocumentQueued, CodigoGeneracion: "B"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.Run(ctx)
	require.Len(t, sink.Events(), 1)
	assert.Equal(t, "A", sink.Events()[0].CodigoGeneracion)
}
