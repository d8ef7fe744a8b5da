//go:build integration

package control

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/dte"
	"facturador/pkg/testutil/containers"
)

func TestRedisSequenceMonotonic(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	seq := NewRedisSequence(rc.Client)
	point := IssuingPoint{
		IssuerNIT:       "0614-123456-001-2",
		Kind:            dte.KindCCF,
		Establecimiento: "M001",
		PuntoVenta:      "P001",
	}

	first, err := seq.Next(ctx, point)
	require.NoError(t, err)
	second, err := seq.Next(ctx, point)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)

	// A different issuing point gets its own counter.
	other := point
	other.PuntoVenta = "P002"
	n, err := seq.Next(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisSequenceConcurrentAllocation(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	alloc := NewAllocator(NewRedisSequence(rc.Client))
	point := IssuingPoint{
		IssuerNIT:       "0614-123456-001-2",
		Kind:            dte.KindFactura,
		Establecimiento: "M001",
		PuntoVenta:      "P001",
	}

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			numero, err := alloc.Next(ctx, point)
			assert.NoError(t, err)
			results <- numero
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, workers)
	for numero := range results {
		assert.Len(t, numero, 32)
		_, dup := seen[numero]
		assert.False(t, dup, numero)
		seen[numero] = struct{}{}
	}
	assert.Len(t, seen, workers)
}
