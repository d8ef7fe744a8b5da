package control

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/dte"
)

func TestFormat(t *testing.T) {
	got := Format(dte.KindCCF, "M001", "P001", 1)
	assert.Equal(t, "DTE-03-M001-P001-000000000000001", got)
	assert.Len(t, got, 32)

	assert.Equal(t, "DTE-01-M002-P003-000000000000042",
		Format(dte.KindFactura, "M002", "P003", 42))
}

func TestAllocatorIsMonotonicPerPoint(t *testing.T) {
	alloc := NewAllocator(NewMemorySequence())
	ctx := context.Background()

	a := IssuingPoint{IssuerNIT: "0614-123456-001-2", Kind: dte.KindFactura,
		Establecimiento: "M001", PuntoVenta: "P001"}
	b := IssuingPoint{IssuerNIT: "0614-123456-001-2", Kind: dte.KindCCF,
		Establecimiento: "M001", PuntoVenta: "P001"}

	n1, err := alloc.Next(ctx, a)
	require.NoError(t, err)
	n2, err := alloc.Next(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "DTE-01-M001-P001-000000000000001", n1)
	assert.Equal(t, "DTE-01-M001-P001-000000000000002", n2)

	// A different kind runs its own sequence.
	nb, err := alloc.Next(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "DTE-03-M001-P001-000000000000001", nb)
}

func TestMemorySequenceConcurrent(t *testing.T) {
	seq := NewMemorySequence()
	point := IssuingPoint{IssuerNIT: "0614-123456-001-2", Kind: dte.KindFactura,
		Establecimiento: "M001", PuntoVenta: "P001"}

	const workers = 50
	var wg sync.WaitGroup
	seen := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(context.Background(), point)
			assert.NoError(t, err)
			seen <- n
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for n := range seen {
		assert.False(t, unique[n], "correlative %d handed out twice", n)
		unique[n] = true
	}
	assert.Len(t, unique, workers)
}
