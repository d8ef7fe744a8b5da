package dte

import (
	"time"

	domainerrors "facturador/pkg/domain-errors"
)

// Builder assembles signed-ready documents for one issuer and environment.
// It holds no mutable state and is safe for concurrent use.
type Builder struct {
	issuer   Issuer
	ambiente string
	now      func() time.Time
	newCode  func() string
}

// BuilderOption customizes a Builder, mainly for deterministic tests.
type BuilderOption func(*Builder)

// WithClock fixes the emission timestamp source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithGenerationCodes fixes the generation-code source.
func WithGenerationCodes(gen func() string) BuilderOption {
	return func(b *Builder) { b.newCode = gen }
}

// NewBuilder returns a builder for the given issuer. ambiente is the MH
// environment code, "00" (test) or "01" (production).
func NewBuilder(issuer Issuer, ambiente string, opts ...BuilderOption) *Builder {
	b := &Builder{
		issuer:   issuer,
		ambiente: ambiente,
		now:      time.Now,
		newCode:  NewGenerationCode,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the document for kind with a fresh generation code and
// returns it along with that code. The counterparty variant must match the
// kind; the control number is allocated by the caller.
func (b *Builder) Build(kind Kind, controlNumber string, cp Counterparty, items []LineItem, opts Options) (Document, string, error) {
	if _, ok := buildableKinds[kind]; !ok {
		return nil, "", domainerrors.Newf(domainerrors.CodeUnsupportedKind, "unsupported DTE kind: %s", kind)
	}
	code := b.newCode()
	fecha, hora := svNow(b.now())
	bc := buildContext{
		controlNumber: controlNumber,
		codigoGen:     code,
		fecEmi:        fecha,
		horEmi:        hora,
		condicion:     orDefaultI(opts.CondicionOperacion, 1),
		opts:          opts,
	}

	var (
		doc Document
		err error
	)
	switch kind {
	case KindFactura:
		doc, err = b.buildFactura(bc, cp, items)
	case KindCCF:
		doc, err = b.buildCCF(bc, cp, items)
	case KindNotaRemision:
		doc, err = b.buildNotaRemision(bc, cp, items)
	case KindNotaCredito:
		doc, err = b.buildNotaCredito(bc, cp, items)
	case KindNotaDebito:
		doc, err = b.buildNotaDebito(bc, cp, items)
	case KindRetencion:
		doc, err = b.buildRetencion(bc, cp, items)
	case KindLiquidacion:
		doc, err = b.buildLiquidacion(bc, cp, items)
	case KindLiquidacionContable:
		doc, err = b.buildLiquidacionContable(bc, cp)
	case KindExportacion:
		doc, err = b.buildExportacion(bc, cp, items)
	case KindSujetoExcluido:
		doc, err = b.buildSujetoExcluido(bc, cp, items)
	case KindDonacion:
		doc, err = b.buildDonacion(bc, cp, items)
	}
	if err != nil {
		return nil, "", err
	}
	return doc, code, nil
}

// buildContext carries the per-build values every kind needs.
type buildContext struct {
	controlNumber string
	codigoGen     string
	fecEmi        string
	horEmi        string
	condicion     int
	opts          Options
}

func (b *Builder) ident(bc buildContext, kind Kind) Identificacion {
	return Identificacion{
		Version:          kind.SchemaVersion(),
		Ambiente:         b.ambiente,
		TipoDte:          kind.String(),
		NumeroControl:    bc.controlNumber,
		CodigoGeneracion: bc.codigoGen,
		TipoModelo:       1,
		TipoOperacion:    1,
		FecEmi:           bc.fecEmi,
		HorEmi:           bc.horEmi,
		TipoMoneda:       "USD",
	}
}

func (b *Builder) identBasica(bc buildContext, kind Kind) IdentificacionBasica {
	return IdentificacionBasica{
		Version:          kind.SchemaVersion(),
		Ambiente:         b.ambiente,
		TipoDte:          kind.String(),
		NumeroControl:    bc.controlNumber,
		CodigoGeneracion: bc.codigoGen,
		TipoModelo:       1,
		TipoOperacion:    1,
		FecEmi:           bc.fecEmi,
		HorEmi:           bc.horEmi,
		TipoMoneda:       "USD",
	}
}

func (b *Builder) emisorEstandar() EmisorEstandar {
	e := b.issuer
	estable := orDefault(e.CodEstablecimiento, "M001")
	punto := orDefault(e.CodPuntoVenta, "P001")
	return EmisorEstandar{
		NIT:                 e.NIT,
		NRC:                 e.NRC,
		Nombre:              e.Nombre,
		CodActividad:        e.CodActividad,
		DescActividad:       e.DescActividad,
		NombreComercial:     optStr(e.NombreComercial),
		TipoEstablecimiento: orDefault(e.TipoEstablecimiento, "01"),
		Direccion:           b.issuerDireccion(),
		Telefono:            e.Telefono,
		Correo:              e.Correo,
		CodEstableMH:        estable,
		CodEstable:          estable,
		CodPuntoVentaMH:     punto,
		CodPuntoVenta:       punto,
	}
}

func (b *Builder) issuerDireccion() Direccion {
	return Direccion{
		Departamento: b.issuer.Departamento,
		Municipio:    b.issuer.Municipio,
		Complemento:  b.issuer.Complemento,
	}
}

func receptorFactura(c Consumer) ReceptorFactura {
	return ReceptorFactura{
		TipoDocumento: orDefault(c.TipoDocumento, "36"),
		NumDocumento:  optStr(c.NumDocumento),
		NRC:           optStr(c.NRC),
		Nombre:        c.Nombre,
		CodActividad:  optStr(c.CodActividad),
		DescActividad: optStr(c.DescActividad),
		Direccion:     consumerDireccion(c),
		Telefono:      optStr(c.Telefono),
		Correo:        optStr(c.Correo),
	}
}

func receptorCCF(r Business) ReceptorCCF {
	return ReceptorCCF{
		NIT:             orDefault(r.NIT, r.NumDocumento),
		NRC:             r.NRC,
		Nombre:          r.Nombre,
		CodActividad:    r.CodActividad,
		DescActividad:   r.DescActividad,
		NombreComercial: optStr(r.NombreComercial),
		Direccion:       businessDireccion(r),
		Telefono:        optStr(r.Telefono),
		Correo:          optStr(r.Correo),
	}
}

func consumerDireccion(c Consumer) Direccion {
	return Direccion{
		Departamento: orDefault(c.Departamento, "06"),
		Municipio:    orDefault(c.Municipio, "14"),
		Complemento:  orDefault(c.Complemento, "San Salvador"),
	}
}

func businessDireccion(r Business) Direccion {
	return Direccion{
		Departamento: orDefault(r.Departamento, "06"),
		Municipio:    orDefault(r.Municipio, "14"),
		Complemento:  orDefault(r.Complemento, "San Salvador"),
	}
}

// optStr maps the empty string to JSON null.
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func wrongCounterparty(kind Kind, want string) error {
	return domainerrors.Newf(domainerrors.CodeInvalidInput,
		"DTE kind %s requires a %s counterparty", kind, want)
}

func requireItems(kind Kind, items []LineItem) error {
	if len(items) == 0 {
		return domainerrors.Newf(domainerrors.CodeInvalidInput,
			"DTE kind %s requires at least one line item", kind)
	}
	return nil
}
