// Package control allocates DTE control numbers. A control number identifies
// the issuing point and its position in a monotonically increasing sequence,
// so allocation must be serialized per (issuer, kind, establishment,
// point-of-sale).
package control

import (
	"context"
	"fmt"

	"facturador/internal/dte"
	domainerrors "facturador/pkg/domain-errors"
)

// maxCorrelative is the largest sequence value the 15-digit field can hold.
const maxCorrelative = 999_999_999_999_999

// IssuingPoint keys one control-number sequence.
type IssuingPoint struct {
	IssuerNIT       string
	Kind            dte.Kind
	Establecimiento string
	PuntoVenta      string
}

func (p IssuingPoint) key() string {
	return fmt.Sprintf("%s:%s:%s:%s", p.IssuerNIT, p.Kind, p.Establecimiento, p.PuntoVenta)
}

// Sequence hands out the next correlative for an issuing point. Implementations
// must never return the same value twice for the same point.
type Sequence interface {
	Next(ctx context.Context, point IssuingPoint) (int64, error)
}

// Format renders the 32-character control number:
// DTE-TT-SSSS-PPPP-NNNNNNNNNNNNNNN.
func Format(kind dte.Kind, establecimiento, puntoVenta string, correlativo int64) string {
	return fmt.Sprintf("DTE-%s-%s-%s-%015d", kind, establecimiento, puntoVenta, correlativo)
}

// Allocator couples a sequence with the wire format.
type Allocator struct {
	seq Sequence
}

func NewAllocator(seq Sequence) *Allocator {
	return &Allocator{seq: seq}
}

// Next allocates and formats the next control number for point.
func (a *Allocator) Next(ctx context.Context, point IssuingPoint) (string, error) {
	n, err := a.seq.Next(ctx, point)
	if err != nil {
		return "", fmt.Errorf("allocating control number: %w", err)
	}
	if n > maxCorrelative {
		return "", domainerrors.Newf(domainerrors.CodeInternal,
			"control number sequence exhausted for %s", point.key())
	}
	return Format(point.Kind, point.Establecimiento, point.PuntoVenta, n), nil
}
