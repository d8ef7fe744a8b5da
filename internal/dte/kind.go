// Package dte builds the Ministerio de Hacienda electronic tax documents
// (Documentos Tributarios Electrónicos). Each kind has a frozen JSON shape and
// its own monetary arithmetic; the builder never emits a field outside a
// kind's schema. Building is pure: no I/O, safe for concurrent use.
package dte

import (
	"strings"

	"github.com/google/uuid"

	domainerrors "facturador/pkg/domain-errors"
)

// Kind is the two-digit DTE type code from the MH catalog.
type Kind string

const (
	KindFactura             Kind = "01" // consumer invoice, IVA-inclusive prices
	KindCCF                 Kind = "03" // comprobante de crédito fiscal (B2B)
	KindNotaRemision        Kind = "04"
	KindNotaCredito         Kind = "05"
	KindNotaDebito          Kind = "06"
	KindRetencion           Kind = "07"
	KindLiquidacion         Kind = "08"
	KindLiquidacionContable Kind = "09"
	KindExportacion         Kind = "11"
	KindSujetoExcluido      Kind = "14"
	KindDonacion            Kind = "15"
	KindInvalidacionEvento  Kind = "INV" // invalidation event, signed but not built here
	KindContingenciaEvento  Kind = "CON" // contingency event, signed but not built here
)

// buildableKinds are the kinds Build dispatches on. The invalidation and
// contingency event documents have their own builders in internal/mh because
// they reference already-emitted DTEs rather than line items.
var buildableKinds = map[Kind]struct{}{
	KindFactura: {}, KindCCF: {}, KindNotaRemision: {}, KindNotaCredito: {},
	KindNotaDebito: {}, KindRetencion: {}, KindLiquidacion: {},
	KindLiquidacionContable: {}, KindExportacion: {}, KindSujetoExcluido: {},
	KindDonacion: {},
}

// schemaVersions maps each kind to the JSON schema version embedded in the
// identificación block. These are the versions the MH certified.
var schemaVersions = map[Kind]int{
	KindFactura:             1,
	KindCCF:                 3,
	KindNotaRemision:        3,
	KindNotaCredito:         3,
	KindNotaDebito:          3,
	KindRetencion:           2,
	KindLiquidacion:         1,
	KindLiquidacionContable: 1,
	KindExportacion:         1,
	KindSujetoExcluido:      1,
	KindDonacion:            1,
}

// receptionVersions maps each kind to the version field of the reception wire
// request, which the MH tracks separately from the document schema version.
var receptionVersions = map[Kind]int{
	KindFactura:             1,
	KindCCF:                 3,
	KindNotaRemision:        1,
	KindNotaCredito:         3,
	KindNotaDebito:          3,
	KindRetencion:           3,
	KindLiquidacion:         1,
	KindLiquidacionContable: 1,
	KindExportacion:         1,
	KindSujetoExcluido:      1,
	KindDonacion:            1,
}

// ParseKind validates a two-digit type code.
func ParseKind(code string) (Kind, error) {
	k := Kind(code)
	if _, ok := buildableKinds[k]; !ok {
		return "", domainerrors.Newf(domainerrors.CodeUnsupportedKind, "unsupported DTE kind: %s", code)
	}
	return k, nil
}

// SchemaVersion returns the document schema version for k, defaulting to 3
// for unknown codes the way the certified implementation did.
func (k Kind) SchemaVersion() int {
	if v, ok := schemaVersions[k]; ok {
		return v
	}
	return 3
}

// ReceptionVersion returns the wire version used in the recepciondte request.
func (k Kind) ReceptionVersion() int {
	if v, ok := receptionVersions[k]; ok {
		return v
	}
	return 1
}

func (k Kind) String() string { return string(k) }

// NewGenerationCode returns a fresh uppercase UUIDv4. The MH requires 36
// uppercase characters and codes are never reused across documents.
func NewGenerationCode() string {
	return strings.ToUpper(uuid.NewString())
}
