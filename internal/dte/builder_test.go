package dte

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	domainerrors "facturador/pkg/domain-errors"
)

const testCode = "A1B2C3D4-0000-4000-8000-ABCDEF012345"

type BuilderSuite struct {
	suite.Suite
	builder *Builder
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) SetupTest() {
	issuer := Issuer{
		NIT:           "0614-123456-001-2",
		NRC:           "123456-7",
		Nombre:        "COMERCIAL EL ROBLE SA DE CV",
		CodActividad:  "46900",
		DescActividad: "Venta al por mayor de otros productos",
		Departamento:  "06",
		Municipio:     "14",
		Complemento:   "Col Escalon, San Salvador",
		Telefono:      "2222-3333",
		Correo:        "facturacion@elroble.example",
	}
	// 2026-03-15 20:30 UTC is 14:30 in El Salvador.
	clock := func() time.Time { return time.Date(2026, 3, 15, 20, 30, 0, 0, time.UTC) }
	codes := func() string { return testCode }
	s.builder = NewBuilder(issuer, "00", WithClock(clock), WithGenerationCodes(codes))
}

func (s *BuilderSuite) buildOne(kind Kind, cp Counterparty, items []LineItem, opts Options) Document {
	doc, code, err := s.builder.Build(kind, "DTE-01-M001-P001-000000000000001", cp, items, opts)
	s.Require().NoError(err)
	s.Equal(testCode, code)
	s.Equal(testCode, doc.GenerationCode())
	return doc
}

func (s *BuilderSuite) consumer() Consumer {
	return Consumer{NumDocumento: "12345678-9", Nombre: "MARIA LOPEZ"}
}

func (s *BuilderSuite) business() Business {
	return Business{
		NIT: "0614-654321-002-3", NRC: "654321-0", Nombre: "DISTRIBUIDORA SUR SA",
		CodActividad: "46900", DescActividad: "Comercio",
	}
}

func (s *BuilderSuite) TestFacturaExtractsIVAFromGross() {
	doc := s.buildOne(KindFactura, s.consumer(),
		[]LineItem{{Descripcion: "Servicio mensual", PrecioUnitario: 113.00}}, Options{})

	f := doc.(*Factura)
	s.Require().Len(f.CuerpoDocumento, 1)
	item := f.CuerpoDocumento[0]
	s.Equal(113.00, item.VentaGravada)
	s.Equal(13.00, item.IVAItem) // extracted, not added on top
	s.Nil(item.Tributos)

	s.Equal(113.00, f.Resumen.TotalGravada)
	s.Equal(113.00, f.Resumen.MontoTotalOperacion)
	s.Equal(113.00, f.Resumen.TotalPagar)
	s.Equal(13.00, f.Resumen.TotalIVA)
	s.Nil(f.Resumen.Tributos)
	s.Equal("CIENTO TRECE 00/100 DOLARES", f.Resumen.TotalLetras)
	s.Require().Len(f.Resumen.Pagos, 1)
	s.Equal(113.00, f.Resumen.Pagos[0].MontoPago)

	s.Equal(1, f.Identificacion.Version)
	s.Equal("00", f.Identificacion.Ambiente)
	s.Equal("2026-03-15", f.Identificacion.FecEmi)
	s.Equal("14:30:00", f.Identificacion.HorEmi)
}

func (s *BuilderSuite) TestCCFAddsIVAOnTop() {
	doc := s.buildOne(KindCCF, s.business(),
		[]LineItem{{Descripcion: "Cajas", PrecioUnitario: 50.00, Cantidad: 2}}, Options{})

	ccf := doc.(*CCF)
	s.Equal([]string{"20"}, ccf.CuerpoDocumento[0].Tributos)
	s.Equal(100.00, ccf.Resumen.TotalGravada)
	s.Require().Len(ccf.Resumen.Tributos, 1)
	s.Equal(13.00, ccf.Resumen.Tributos[0].Valor)
	s.Equal(113.00, ccf.Resumen.MontoTotalOperacion)
	s.Equal(113.00, ccf.Resumen.TotalPagar)
	s.Equal(3, ccf.Identificacion.Version)
}

func (s *BuilderSuite) TestNotaCreditoNegatesAmounts() {
	ref := &DocumentRef{CodigoGeneracion: "11111111-2222-4333-8444-555566667777"}
	doc := s.buildOne(KindNotaCredito, s.business(),
		[]LineItem{{Descripcion: "Devolucion", PrecioUnitario: 100.00}},
		Options{Referencia: ref})

	nc := doc.(*NotaCredito)
	s.Equal(-100.00, nc.CuerpoDocumento[0].VentaGravada)
	s.Equal(-100.00, nc.Resumen.TotalGravada)
	s.Equal(-13.00, nc.Resumen.Tributos[0].Valor)
	s.Equal(-113.00, nc.Resumen.MontoTotalOperacion)
	// Words always read the absolute amount.
	s.Equal("CIENTO TRECE 00/100 DOLARES", nc.Resumen.TotalLetras)

	s.Require().Len(nc.DocumentoRelacionado, 1)
	s.Equal("03", nc.DocumentoRelacionado[0].TipoDocumento)
	s.Equal(2, nc.DocumentoRelacionado[0].TipoGeneracion)
	s.Equal(ref.CodigoGeneracion, nc.DocumentoRelacionado[0].NumeroDocumento)
	s.Equal(ref.CodigoGeneracion, *nc.CuerpoDocumento[0].NumeroDocumento)
}

func (s *BuilderSuite) TestNotaDebitoStaysPositive() {
	doc := s.buildOne(KindNotaDebito, s.business(),
		[]LineItem{{Descripcion: "Recargo", PrecioUnitario: 100.00}}, Options{})

	nd := doc.(*NotaDebito)
	s.Equal(100.00, nd.Resumen.TotalGravada)
	s.Equal(113.00, nd.Resumen.MontoTotalOperacion)
}

func (s *BuilderSuite) TestRetencionDefaultsToOnePercent() {
	doc := s.buildOne(KindRetencion, s.business(),
		[]LineItem{{MontoSujeto: 200.00}}, Options{})

	cr := doc.(*ComprobanteRetencion)
	item := cr.CuerpoDocumento[0]
	s.Equal(2.00, item.IVARetenido)
	s.Equal("22", item.CodigoRetencionMH)
	s.Equal("03", item.TipoDte)
	s.Equal(200.00, cr.Resumen.TotalSujetoRetencion)
	s.Equal(2.00, cr.Resumen.TotalIVARetenido)
	s.Equal(0.0, cr.Resumen.TotalIVA)
	s.Equal("01", cr.Emisor.Direccion.Distrito)
}

func (s *BuilderSuite) TestSujetoExcluidoRentWithholding() {
	below := s.buildOne(KindSujetoExcluido,
		ExcludedSubject{NumDocumento: "04567890-1", Nombre: "JOSE PEREZ"},
		[]LineItem{{Descripcion: "Transporte", PrecioUnitario: 99.99}}, Options{})
	s.Equal(0.0, below.(*FacturaSujetoExcluido).Resumen.ReteRenta)
	s.Equal(99.99, below.(*FacturaSujetoExcluido).Resumen.TotalPagar)

	at := s.buildOne(KindSujetoExcluido,
		ExcludedSubject{NumDocumento: "04567890-1", Nombre: "JOSE PEREZ"},
		[]LineItem{{Descripcion: "Transporte", PrecioUnitario: 100.00}}, Options{})
	fse := at.(*FacturaSujetoExcluido)
	s.Equal(10.00, fse.Resumen.ReteRenta)
	s.Equal(90.00, fse.Resumen.TotalPagar)
	s.Equal(90.00, fse.Resumen.Pagos[0].MontoPago)
}

func (s *BuilderSuite) TestLiquidacionContableDerivesSettlement() {
	doc := s.buildOne(KindLiquidacionContable, s.business(), nil,
		Options{Liquidacion: &LiquidacionParams{ValorOperaciones: 1130.00, PorcentajeComision: 5}})

	dcl := doc.(*DocumentoLiquidacionContable)
	c := dcl.CuerpoDocumento
	s.Equal(1130.00, c.ValorOperaciones)
	s.Equal(130.00, c.IVA)
	s.Equal(1000.00, c.MontoSujetoPercepcion)
	s.Equal(20.00, c.IVAPercibido)
	s.Equal(56.50, c.Comision)
	s.Equal(7.35, c.IVAComision)
	s.Equal(1046.15, c.LiquidoAPagar)
	s.Equal("MIL CUARENTA Y SEIS 15/100 DOLARES", c.TotalLetras)
	// Extension falls back to the issuer's own identity.
	s.Require().NotNil(dcl.Extension)
	s.Equal("COMERCIAL EL ROBLE SA DE CV", *dcl.Extension.NombEntrega)
}

func (s *BuilderSuite) TestDonacionUsesFixedUnitMeasure() {
	doc := s.buildOne(KindDonacion,
		Donor{NumDocumento: "0614-999999-001-1", Nombre: "FUNDACION AYUDA"},
		[]LineItem{{Descripcion: "Viveres", ValorDonacion: 250.00}}, Options{})

	cd := doc.(*ComprobanteDonacion)
	s.Equal(99, cd.CuerpoDocumento[0].UniMedida)
	s.Equal(1, cd.CuerpoDocumento[0].TipoItem)
	s.Equal(250.00, cd.Resumen.TotalDonacion)
	s.Require().Len(cd.OtrosDocumentos, 1)
	s.Equal("01", cd.OtrosDocumentos[0].CodigoDocumento)
}

func (s *BuilderSuite) TestWrongCounterpartyRejected() {
	_, _, err := s.builder.Build(KindCCF, "DTE-03-M001-P001-000000000000001",
		s.consumer(), []LineItem{{Descripcion: "x", PrecioUnitario: 1}}, Options{})
	s.Require().Error(err)
	s.Equal(domainerrors.CodeInvalidInput, domainerrors.CodeOf(err))
}

func (s *BuilderSuite) TestUnsupportedKindRejected() {
	_, _, err := s.builder.Build(Kind("99"), "DTE-99-M001-P001-000000000000001",
		s.consumer(), nil, Options{})
	s.Require().Error(err)
	s.Equal(domainerrors.CodeUnsupportedKind, domainerrors.CodeOf(err))
}

func (s *BuilderSuite) TestEmptyItemsRejected() {
	_, _, err := s.builder.Build(KindFactura, "DTE-01-M001-P001-000000000000001",
		s.consumer(), nil, Options{})
	s.Require().Error(err)
	s.Equal(domainerrors.CodeInvalidInput, domainerrors.CodeOf(err))
}

// Wire-shape checks: the marshaled JSON must carry exactly the keys each
// certified schema expects, nulls included.

func (s *BuilderSuite) marshalKeys(doc Document, path ...string) map[string]json.RawMessage {
	raw, err := json.Marshal(doc)
	s.Require().NoError(err)
	node := map[string]json.RawMessage{}
	s.Require().NoError(json.Unmarshal(raw, &node))
	for _, p := range path {
		next := map[string]json.RawMessage{}
		s.Require().NoError(json.Unmarshal(node[p], &next))
		node = next
	}
	return node
}

func (s *BuilderSuite) TestFacturaWireNulls() {
	doc := s.buildOne(KindFactura, s.consumer(),
		[]LineItem{{Descripcion: "Servicio", PrecioUnitario: 113.00}}, Options{})

	top := s.marshalKeys(doc)
	s.Equal("null", string(top["documentoRelacionado"]))
	s.Equal("null", string(top["otrosDocumentos"]))
	s.Equal("null", string(top["ventaTercero"]))
	s.Equal("null", string(top["apendice"]))
	s.Equal("null", string(top["extension"]))

	ident := s.marshalKeys(doc, "identificacion")
	s.Equal("null", string(ident["tipoContingencia"]))
	s.Equal("null", string(ident["motivoContin"]))
}

func (s *BuilderSuite) TestLiquidacionOmitsContingencyKeys() {
	doc := s.buildOne(KindLiquidacion, s.business(),
		[]LineItem{{Descripcion: "Liquidacion marzo", PrecioUnitario: 500.00}}, Options{})

	ident := s.marshalKeys(doc, "identificacion")
	s.NotContains(ident, "tipoContingencia")
	s.NotContains(ident, "motivoContin")
}

func (s *BuilderSuite) TestExportacionKeepsSchemaTypo() {
	doc := s.buildOne(KindExportacion,
		ForeignBuyer{Nombre: "ACME CORP"},
		[]LineItem{{Descripcion: "Cafe oro", PrecioUnitario: 1500.00}}, Options{})

	ident := s.marshalKeys(doc, "identificacion")
	s.Contains(ident, "motivoContigencia")
	s.NotContains(ident, "motivoContin")

	fexe := doc.(*FacturaExportacion)
	s.Equal([]string{"C3"}, fexe.CuerpoDocumento[0].Tributos)
	s.Equal(1, fexe.Emisor.TipoItemExpor)
}
