package dte

import "encoding/json"

// Body item shapes. One struct per kind; fields outside a kind's schema must
// never appear, so there is no shared superset item.

// ItemFactura carries the per-item extracted IVA (ivaItem) the consumer
// invoice schema requires.
type ItemFactura struct {
	NumItem         int      `json:"numItem"`
	TipoItem        int      `json:"tipoItem"`
	NumeroDocumento *string  `json:"numeroDocumento"`
	Codigo          *string  `json:"codigo"`
	CodTributo      *string  `json:"codTributo"`
	Cantidad        float64  `json:"cantidad"`
	UniMedida       int      `json:"uniMedida"`
	Descripcion     string   `json:"descripcion"`
	PrecioUni       float64  `json:"precioUni"`
	MontoDescu      float64  `json:"montoDescu"`
	VentaNoSuj      float64  `json:"ventaNoSuj"`
	VentaExenta     float64  `json:"ventaExenta"`
	VentaGravada    float64  `json:"ventaGravada"`
	Tributos        []string `json:"tributos"`
	PSV             float64  `json:"psv"`
	NoGravado       float64  `json:"noGravado"`
	IVAItem         float64  `json:"ivaItem"`
}

// ItemCCF is the B2B line: tax is summed at the resumen, not per item.
type ItemCCF struct {
	NumItem         int      `json:"numItem"`
	TipoItem        int      `json:"tipoItem"`
	NumeroDocumento *string  `json:"numeroDocumento"`
	Codigo          *string  `json:"codigo"`
	CodTributo      *string  `json:"codTributo"`
	Cantidad        float64  `json:"cantidad"`
	UniMedida       int      `json:"uniMedida"`
	Descripcion     string   `json:"descripcion"`
	PrecioUni       float64  `json:"precioUni"`
	MontoDescu      float64  `json:"montoDescu"`
	VentaNoSuj      float64  `json:"ventaNoSuj"`
	VentaExenta     float64  `json:"ventaExenta"`
	VentaGravada    float64  `json:"ventaGravada"`
	Tributos        []string `json:"tributos"`
	PSV             float64  `json:"psv"`
	NoGravado       float64  `json:"noGravado"`
}

// ItemRemision is the 14-field remisión line.
type ItemRemision struct {
	NumItem         int      `json:"numItem"`
	TipoItem        int      `json:"tipoItem"`
	NumeroDocumento *string  `json:"numeroDocumento"`
	Codigo          *string  `json:"codigo"`
	CodTributo      *string  `json:"codTributo"`
	Descripcion     string   `json:"descripcion"`
	Cantidad        float64  `json:"cantidad"`
	UniMedida       int      `json:"uniMedida"`
	PrecioUni       float64  `json:"precioUni"`
	MontoDescu      float64  `json:"montoDescu"`
	VentaNoSuj      float64  `json:"ventaNoSuj"`
	VentaExenta     float64  `json:"ventaExenta"`
	VentaGravada    float64  `json:"ventaGravada"`
	Tributos        []string `json:"tributos"`
}

// ItemNota is the credit/debit note line; numeroDocumento points at the
// amended document's generation code.
type ItemNota struct {
	NumItem         int      `json:"numItem"`
	TipoItem        int      `json:"tipoItem"`
	NumeroDocumento *string  `json:"numeroDocumento"`
	Codigo          *string  `json:"codigo"`
	CodTributo      *string  `json:"codTributo"`
	Cantidad        float64  `json:"cantidad"`
	UniMedida       int      `json:"uniMedida"`
	Descripcion     string   `json:"descripcion"`
	PrecioUni       float64  `json:"precioUni"`
	MontoDescu      float64  `json:"montoDescu"`
	VentaNoSuj      float64  `json:"ventaNoSuj"`
	VentaExenta     float64  `json:"ventaExenta"`
	VentaGravada    float64  `json:"ventaGravada"`
	Tributos        []string `json:"tributos"`
}

// ItemRetencion references a prior taxed document, not a product.
type ItemRetencion struct {
	NumItem           int     `json:"numItem"`
	TipoDte           string  `json:"tipoDte"`
	TipoGeneracion    int     `json:"tipoGeneracion"`
	NumDocumento      string  `json:"numDocumento"`
	FechaEmision      string  `json:"fechaEmision"`
	MontoSujetoGrav   float64 `json:"montoSujetoGrav"`
	CodigoRetencionMH string  `json:"codigoRetencionMH"`
	IVARetenido       float64 `json:"ivaRetenido"`
	Descripcion       string  `json:"descripcion"`
}

// ItemLiquidacion references a settled document.
type ItemLiquidacion struct {
	NumItem         int      `json:"numItem"`
	TipoDte         string   `json:"tipoDte"`
	TipoGeneracion  int      `json:"tipoGeneracion"`
	NumeroDocumento string   `json:"numeroDocumento"`
	FechaGeneracion string   `json:"fechaGeneracion"`
	VentaNoSuj      float64  `json:"ventaNoSuj"`
	VentaExenta     float64  `json:"ventaExenta"`
	VentaGravada    float64  `json:"ventaGravada"`
	Exportaciones   float64  `json:"exportaciones"`
	Tributos        []string `json:"tributos"`
	IVAItem         float64  `json:"ivaItem"`
	ObsItem         string   `json:"obsItem"`
}

// ItemExportacion has no tipoItem and carries export tribute codes.
type ItemExportacion struct {
	NumItem      int      `json:"numItem"`
	Codigo       *string  `json:"codigo"`
	Cantidad     float64  `json:"cantidad"`
	UniMedida    int      `json:"uniMedida"`
	Descripcion  string   `json:"descripcion"`
	PrecioUni    float64  `json:"precioUni"`
	MontoDescu   float64  `json:"montoDescu"`
	VentaGravada float64  `json:"ventaGravada"`
	Tributos     []string `json:"tributos"`
	NoGravado    float64  `json:"noGravado"`
}

// ItemSujetoExcluido records a purchase (compra), not a sale.
type ItemSujetoExcluido struct {
	NumItem     int     `json:"numItem"`
	TipoItem    int     `json:"tipoItem"`
	Codigo      *string `json:"codigo"`
	Cantidad    float64 `json:"cantidad"`
	UniMedida   int     `json:"uniMedida"`
	Descripcion string  `json:"descripcion"`
	PrecioUni   float64 `json:"precioUni"`
	MontoDescu  float64 `json:"montoDescu"`
	Compra      float64 `json:"compra"`
}

// ItemDonacion values the donated good or service.
type ItemDonacion struct {
	NumItem       int     `json:"numItem"`
	TipoItem      int     `json:"tipoItem"`
	Codigo        *string `json:"codigo"`
	Cantidad      float64 `json:"cantidad"`
	UniMedida     int     `json:"uniMedida"`
	Descripcion   string  `json:"descripcion"`
	ValorDonacion float64 `json:"valorDonacion"`
}

// Summary shapes.

type ResumenFactura struct {
	TotalNoSuj          float64          `json:"totalNoSuj"`
	TotalExenta         float64          `json:"totalExenta"`
	TotalGravada        float64          `json:"totalGravada"`
	SubTotalVentas      float64          `json:"subTotalVentas"`
	DescuNoSuj          float64          `json:"descuNoSuj"`
	DescuExenta         float64          `json:"descuExenta"`
	DescuGravada        float64          `json:"descuGravada"`
	PorcentajeDescuento float64          `json:"porcentajeDescuento"`
	TotalDescu          float64          `json:"totalDescu"`
	Tributos            []TributoResumen `json:"tributos"`
	SubTotal            float64          `json:"subTotal"`
	IVARete1            float64          `json:"ivaRete1"`
	ReteRenta           float64          `json:"reteRenta"`
	MontoTotalOperacion float64          `json:"montoTotalOperacion"`
	TotalNoGravado      float64          `json:"totalNoGravado"`
	TotalPagar          float64          `json:"totalPagar"`
	TotalLetras         string           `json:"totalLetras"`
	TotalIVA            float64          `json:"totalIva"`
	SaldoFavor          float64          `json:"saldoFavor"`
	CondicionOperacion  int              `json:"condicionOperacion"`
	Pagos               []Pago           `json:"pagos"`
	NumPagoElectronico  *string          `json:"numPagoElectronico"`
}

type ResumenCCF struct {
	TotalNoSuj          float64          `json:"totalNoSuj"`
	TotalExenta         float64          `json:"totalExenta"`
	TotalGravada        float64          `json:"totalGravada"`
	SubTotalVentas      float64          `json:"subTotalVentas"`
	DescuNoSuj          float64          `json:"descuNoSuj"`
	DescuExenta         float64          `json:"descuExenta"`
	DescuGravada        float64          `json:"descuGravada"`
	PorcentajeDescuento float64          `json:"porcentajeDescuento"`
	TotalDescu          float64          `json:"totalDescu"`
	Tributos            []TributoResumen `json:"tributos"`
	SubTotal            float64          `json:"subTotal"`
	IVAPerci1           float64          `json:"ivaPerci1"`
	IVARete1            float64          `json:"ivaRete1"`
	ReteRenta           float64          `json:"reteRenta"`
	MontoTotalOperacion float64          `json:"montoTotalOperacion"`
	TotalNoGravado      float64          `json:"totalNoGravado"`
	TotalPagar          float64          `json:"totalPagar"`
	TotalLetras         string           `json:"totalLetras"`
	SaldoFavor          float64          `json:"saldoFavor"`
	CondicionOperacion  int              `json:"condicionOperacion"`
	Pagos               []Pago           `json:"pagos"`
	NumPagoElectronico  *string          `json:"numPagoElectronico"`
}

// ResumenRemision is the 13-field remisión summary: no payments, no
// operation condition.
type ResumenRemision struct {
	TotalNoSuj          float64          `json:"totalNoSuj"`
	TotalExenta         float64          `json:"totalExenta"`
	TotalGravada        float64          `json:"totalGravada"`
	SubTotalVentas      float64          `json:"subTotalVentas"`
	DescuNoSuj          float64          `json:"descuNoSuj"`
	DescuExenta         float64          `json:"descuExenta"`
	DescuGravada        float64          `json:"descuGravada"`
	PorcentajeDescuento float64          `json:"porcentajeDescuento"`
	TotalDescu          float64          `json:"totalDescu"`
	Tributos            []TributoResumen `json:"tributos"`
	SubTotal            float64          `json:"subTotal"`
	MontoTotalOperacion float64          `json:"montoTotalOperacion"`
	TotalLetras         string           `json:"totalLetras"`
}

// ResumenNotaCredito omits every payment-term field the invoice summaries
// carry; the note schemas reject pagos, totalPagar and saldoFavor.
type ResumenNotaCredito struct {
	TotalNoSuj          float64          `json:"totalNoSuj"`
	TotalExenta         float64          `json:"totalExenta"`
	TotalGravada        float64          `json:"totalGravada"`
	SubTotalVentas      float64          `json:"subTotalVentas"`
	DescuNoSuj          float64          `json:"descuNoSuj"`
	DescuExenta         float64          `json:"descuExenta"`
	TotalDescu          float64          `json:"totalDescu"`
	Tributos            []TributoResumen `json:"tributos"`
	SubTotal            float64          `json:"subTotal"`
	IVAPerci1           float64          `json:"ivaPerci1"`
	IVARete1            float64          `json:"ivaRete1"`
	ReteRenta           float64          `json:"reteRenta"`
	MontoTotalOperacion float64          `json:"montoTotalOperacion"`
	TotalLetras         string           `json:"totalLetras"`
	CondicionOperacion  int              `json:"condicionOperacion"`
}

// ResumenNotaDebito keeps the electronic-payment reference the credit note
// drops.
type ResumenNotaDebito struct {
	TotalNoSuj          float64          `json:"totalNoSuj"`
	TotalExenta         float64          `json:"totalExenta"`
	TotalGravada        float64          `json:"totalGravada"`
	SubTotalVentas      float64          `json:"subTotalVentas"`
	DescuNoSuj          float64          `json:"descuNoSuj"`
	DescuExenta         float64          `json:"descuExenta"`
	TotalDescu          float64          `json:"totalDescu"`
	Tributos            []TributoResumen `json:"tributos"`
	SubTotal            float64          `json:"subTotal"`
	IVAPerci1           float64          `json:"ivaPerci1"`
	IVARete1            float64          `json:"ivaRete1"`
	ReteRenta           float64          `json:"reteRenta"`
	MontoTotalOperacion float64          `json:"montoTotalOperacion"`
	TotalLetras         string           `json:"totalLetras"`
	CondicionOperacion  int              `json:"condicionOperacion"`
	NumPagoElectronico  *string          `json:"numPagoElectronico"`
}

// ResumenRetencion: totalIva must be present and zero, and the field is
// spelled totalIvaRetenido (lowercase v) in the certified schema.
type ResumenRetencion struct {
	TotalSujetoRetencion float64 `json:"totalSujetoRetencion"`
	TotalIVARetenido     float64 `json:"totalIvaRetenido"`
	TotalLetras          string  `json:"totalLetras"`
	TotalIVA             float64 `json:"totalIva"`
	Observaciones        *string `json:"observaciones"`
}

type ResumenLiquidacion struct {
	TotalNoSuj          float64          `json:"totalNoSuj"`
	TotalExenta         float64          `json:"totalExenta"`
	TotalGravada        float64          `json:"totalGravada"`
	TotalExportacion    float64          `json:"totalExportacion"`
	SubTotalVentas      float64          `json:"subTotalVentas"`
	Tributos            []TributoResumen `json:"tributos"`
	MontoTotalOperacion float64          `json:"montoTotalOperacion"`
	IVAPerci            float64          `json:"ivaPerci"`
	Total               float64          `json:"total"`
	TotalLetras         string           `json:"totalLetras"`
	CondicionOperacion  int              `json:"condicionOperacion"`
}

// CuerpoLiquidacionContable is an object, not an array: the accounting
// liquidation has a single settlement body.
type CuerpoLiquidacionContable struct {
	PeriodoLiquidacionFechaInicio string  `json:"periodoLiquidacionFechaInicio"`
	PeriodoLiquidacionFechaFin    string  `json:"periodoLiquidacionFechaFin"`
	CodLiquidacion                string  `json:"codLiquidacion"`
	CantidadDoc                   int     `json:"cantidadDoc"`
	ValorOperaciones              float64 `json:"valorOperaciones"`
	MontoSinPercepcion            float64 `json:"montoSinPercepcion"`
	DescripSinPercepcion          *string `json:"descripSinPercepcion"`
	SubTotal                      float64 `json:"subTotal"`
	IVA                           float64 `json:"iva"`
	MontoSujetoPercepcion         float64 `json:"montoSujetoPercepcion"`
	IVAPercibido                  float64 `json:"ivaPercibido"`
	Comision                      float64 `json:"comision"`
	PorcentComision               float64 `json:"porcentComision"`
	IVAComision                   float64 `json:"ivaComision"`
	LiquidoAPagar                 float64 `json:"liquidoApagar"`
	TotalLetras                   string  `json:"totalLetras"`
	Observaciones                 *string `json:"observaciones"`
}

type ResumenExportacion struct {
	TotalGravada        float64 `json:"totalGravada"`
	Descuento           float64 `json:"descuento"`
	PorcentajeDescuento float64 `json:"porcentajeDescuento"`
	TotalDescu          float64 `json:"totalDescu"`
	MontoTotalOperacion float64 `json:"montoTotalOperacion"`
	TotalNoGravado      float64 `json:"totalNoGravado"`
	TotalPagar          float64 `json:"totalPagar"`
	TotalLetras         string  `json:"totalLetras"`
	CondicionOperacion  int     `json:"condicionOperacion"`
	Pagos               []Pago  `json:"pagos"`
	NumPagoElectronico  *string `json:"numPagoElectronico"`
	CodIncoterms        *string `json:"codIncoterms"`
	DescIncoterms       *string `json:"descIncoterms"`
	Flete               float64 `json:"flete"`
	Seguro              float64 `json:"seguro"`
	Observaciones       *string `json:"observaciones"`
}

type ResumenSujetoExcluido struct {
	TotalCompra        float64 `json:"totalCompra"`
	Descu              float64 `json:"descu"`
	TotalDescu         float64 `json:"totalDescu"`
	SubTotal           float64 `json:"subTotal"`
	IVARete1           float64 `json:"ivaRete1"`
	ReteRenta          float64 `json:"reteRenta"`
	TotalPagar         float64 `json:"totalPagar"`
	TotalLetras        string  `json:"totalLetras"`
	CondicionOperacion int     `json:"condicionOperacion"`
	Pagos              []Pago  `json:"pagos"`
	Observaciones      *string `json:"observaciones"`
}

type ResumenDonacion struct {
	TotalDonacion      float64 `json:"totalDonacion"`
	TotalLetras        string  `json:"totalLetras"`
	CondicionOperacion int     `json:"condicionOperacion"`
}

// Document is the sealed union of the frozen document shapes. The payload
// that gets signed is exactly the JSON marshaling of one of these.
type Document interface {
	Kind() Kind
	GenerationCode() string
	ControlNumber() string
	document()
}

// Factura is the consumer invoice (01).
type Factura struct {
	Identificacion       Identificacion  `json:"identificacion"`
	DocumentoRelacionado json.RawMessage `json:"documentoRelacionado"`
	Emisor               EmisorEstandar  `json:"emisor"`
	Receptor             ReceptorFactura `json:"receptor"`
	OtrosDocumentos      json.RawMessage `json:"otrosDocumentos"`
	VentaTercero         json.RawMessage `json:"ventaTercero"`
	CuerpoDocumento      []ItemFactura   `json:"cuerpoDocumento"`
	Resumen              ResumenFactura  `json:"resumen"`
	Extension            *Extension      `json:"extension"`
	Apendice             json.RawMessage `json:"apendice"`
}

// CCF is the tax credit note for registered taxpayers (03).
type CCF struct {
	Identificacion       Identificacion  `json:"identificacion"`
	DocumentoRelacionado json.RawMessage `json:"documentoRelacionado"`
	Emisor               EmisorEstandar  `json:"emisor"`
	Receptor             ReceptorCCF     `json:"receptor"`
	OtrosDocumentos      json.RawMessage `json:"otrosDocumentos"`
	VentaTercero         json.RawMessage `json:"ventaTercero"`
	CuerpoDocumento      []ItemCCF       `json:"cuerpoDocumento"`
	Resumen              ResumenCCF      `json:"resumen"`
	Extension            *Extension      `json:"extension"`
	Apendice             json.RawMessage `json:"apendice"`
}

// NotaRemision is the goods remittance note (04).
type NotaRemision struct {
	Identificacion       Identificacion   `json:"identificacion"`
	DocumentoRelacionado json.RawMessage  `json:"documentoRelacionado"`
	Emisor               EmisorEstandar   `json:"emisor"`
	Receptor             ReceptorRemision `json:"receptor"`
	VentaTercero         json.RawMessage  `json:"ventaTercero"`
	CuerpoDocumento      []ItemRemision   `json:"cuerpoDocumento"`
	Resumen              ResumenRemision  `json:"resumen"`
	Extension            *Extension       `json:"extension"`
	Apendice             json.RawMessage  `json:"apendice"`
}

// NotaCredito reverses a prior sale (05); every monetary field is negated.
type NotaCredito struct {
	Identificacion       Identificacion         `json:"identificacion"`
	DocumentoRelacionado []DocumentoRelacionado `json:"documentoRelacionado"`
	Emisor               EmisorNota             `json:"emisor"`
	Receptor             ReceptorCCF            `json:"receptor"`
	VentaTercero         json.RawMessage        `json:"ventaTercero"`
	CuerpoDocumento      []ItemNota             `json:"cuerpoDocumento"`
	Resumen              ResumenNotaCredito     `json:"resumen"`
	Extension            *Extension             `json:"extension"`
	Apendice             json.RawMessage        `json:"apendice"`
}

// NotaDebito charges additional amounts against a prior sale (06).
type NotaDebito struct {
	Identificacion       Identificacion         `json:"identificacion"`
	DocumentoRelacionado []DocumentoRelacionado `json:"documentoRelacionado"`
	Emisor               EmisorNota             `json:"emisor"`
	Receptor             ReceptorCCF            `json:"receptor"`
	VentaTercero         json.RawMessage        `json:"ventaTercero"`
	CuerpoDocumento      []ItemNota             `json:"cuerpoDocumento"`
	Resumen              ResumenNotaDebito      `json:"resumen"`
	Extension            *Extension             `json:"extension"`
	Apendice             json.RawMessage        `json:"apendice"`
}

// ComprobanteRetencion certifies withheld IVA (07).
type ComprobanteRetencion struct {
	Identificacion  Identificacion    `json:"identificacion"`
	Emisor          EmisorRetencion   `json:"emisor"`
	Receptor        ReceptorRetencion `json:"receptor"`
	CuerpoDocumento []ItemRetencion   `json:"cuerpoDocumento"`
	Resumen         ResumenRetencion  `json:"resumen"`
	Apendice        json.RawMessage   `json:"apendice"`
}

// ComprobanteLiquidacion settles documents issued on behalf of a principal (08).
type ComprobanteLiquidacion struct {
	Identificacion  IdentificacionBasica `json:"identificacion"`
	Emisor          EmisorEstandar       `json:"emisor"`
	Receptor        ReceptorCCF          `json:"receptor"`
	CuerpoDocumento []ItemLiquidacion    `json:"cuerpoDocumento"`
	Resumen         ResumenLiquidacion   `json:"resumen"`
	Extension       *Extension           `json:"extension"`
	Apendice        json.RawMessage      `json:"apendice"`
}

// DocumentoLiquidacionContable is the accounting liquidation (09); its body
// is a single settlement object and it has no resumen.
type DocumentoLiquidacionContable struct {
	Identificacion  IdentificacionBasica        `json:"identificacion"`
	Emisor          EmisorLiquidacionContable   `json:"emisor"`
	Receptor        ReceptorLiquidacionContable `json:"receptor"`
	CuerpoDocumento CuerpoLiquidacionContable   `json:"cuerpoDocumento"`
	Extension       *Extension                  `json:"extension"`
	Apendice        json.RawMessage             `json:"apendice"`
}

// FacturaExportacion is the export invoice (11).
type FacturaExportacion struct {
	Identificacion  IdentificacionExportacion `json:"identificacion"`
	Emisor          EmisorExportacion         `json:"emisor"`
	Receptor        ReceptorExportacion       `json:"receptor"`
	OtrosDocumentos json.RawMessage           `json:"otrosDocumentos"`
	VentaTercero    json.RawMessage           `json:"ventaTercero"`
	CuerpoDocumento []ItemExportacion         `json:"cuerpoDocumento"`
	Resumen         ResumenExportacion        `json:"resumen"`
	Apendice        json.RawMessage           `json:"apendice"`
}

// FacturaSujetoExcluido documents purchases from non-registered subjects (14).
type FacturaSujetoExcluido struct {
	Identificacion  Identificacion        `json:"identificacion"`
	Emisor          EmisorSujetoExcluido  `json:"emisor"`
	SujetoExcluido  SujetoExcluidoBlock   `json:"sujetoExcluido"`
	CuerpoDocumento []ItemSujetoExcluido  `json:"cuerpoDocumento"`
	Resumen         ResumenSujetoExcluido `json:"resumen"`
	Apendice        json.RawMessage       `json:"apendice"`
}

// ComprobanteDonacion acknowledges a donation (15); donor/donee replace
// emisor/receptor and a supporting-document list is mandatory.
type ComprobanteDonacion struct {
	Identificacion  Identificacion      `json:"identificacion"`
	Donante         Donante             `json:"donante"`
	Donatario       Donatario           `json:"donatario"`
	OtrosDocumentos []DonacionDocumento `json:"otrosDocumentos"`
	CuerpoDocumento []ItemDonacion      `json:"cuerpoDocumento"`
	Resumen         ResumenDonacion     `json:"resumen"`
	Extension       *Extension          `json:"extension"`
	Apendice        json.RawMessage     `json:"apendice"`
}

func (d *Factura) Kind() Kind                      { return KindFactura }
func (d *CCF) Kind() Kind                          { return KindCCF }
func (d *NotaRemision) Kind() Kind                 { return KindNotaRemision }
func (d *NotaCredito) Kind() Kind                  { return KindNotaCredito }
func (d *NotaDebito) Kind() Kind                   { return KindNotaDebito }
func (d *ComprobanteRetencion) Kind() Kind         { return KindRetencion }
func (d *ComprobanteLiquidacion) Kind() Kind       { return KindLiquidacion }
func (d *DocumentoLiquidacionContable) Kind() Kind { return KindLiquidacionContable }
func (d *FacturaExportacion) Kind() Kind           { return KindExportacion }
func (d *FacturaSujetoExcluido) Kind() Kind        { return KindSujetoExcluido }
func (d *ComprobanteDonacion) Kind() Kind          { return KindDonacion }

func (d *Factura) GenerationCode() string              { return d.Identificacion.CodigoGeneracion }
func (d *CCF) GenerationCode() string                  { return d.Identificacion.CodigoGeneracion }
func (d *NotaRemision) GenerationCode() string         { return d.Identificacion.CodigoGeneracion }
func (d *NotaCredito) GenerationCode() string          { return d.Identificacion.CodigoGeneracion }
func (d *NotaDebito) GenerationCode() string           { return d.Identificacion.CodigoGeneracion }
func (d *ComprobanteRetencion) GenerationCode() string { return d.Identificacion.CodigoGeneracion }
func (d *ComprobanteLiquidacion) GenerationCode() string {
	return d.Identificacion.CodigoGeneracion
}
func (d *DocumentoLiquidacionContable) GenerationCode() string {
	return d.Identificacion.CodigoGeneracion
}
func (d *FacturaExportacion) GenerationCode() string    { return d.Identificacion.CodigoGeneracion }
func (d *FacturaSujetoExcluido) GenerationCode() string { return d.Identificacion.CodigoGeneracion }
func (d *ComprobanteDonacion) GenerationCode() string   { return d.Identificacion.CodigoGeneracion }

func (d *Factura) ControlNumber() string              { return d.Identificacion.NumeroControl }
func (d *CCF) ControlNumber() string                  { return d.Identificacion.NumeroControl }
func (d *NotaRemision) ControlNumber() string         { return d.Identificacion.NumeroControl }
func (d *NotaCredito) ControlNumber() string          { return d.Identificacion.NumeroControl }
func (d *NotaDebito) ControlNumber() string           { return d.Identificacion.NumeroControl }
func (d *ComprobanteRetencion) ControlNumber() string { return d.Identificacion.NumeroControl }
func (d *ComprobanteLiquidacion) ControlNumber() string {
	return d.Identificacion.NumeroControl
}
func (d *DocumentoLiquidacionContable) ControlNumber() string {
	return d.Identificacion.NumeroControl
}
func (d *FacturaExportacion) ControlNumber() string    { return d.Identificacion.NumeroControl }
func (d *FacturaSujetoExcluido) ControlNumber() string { return d.Identificacion.NumeroControl }
func (d *ComprobanteDonacion) ControlNumber() string   { return d.Identificacion.NumeroControl }

func (d *Factura) document()                      {}
func (d *CCF) document()                          {}
func (d *NotaRemision) document()                 {}
func (d *NotaCredito) document()                  {}
func (d *NotaDebito) document()                   {}
func (d *ComprobanteRetencion) document()         {}
func (d *ComprobanteLiquidacion) document()       {}
func (d *DocumentoLiquidacionContable) document() {}
func (d *FacturaExportacion) document()           {}
func (d *FacturaSujetoExcluido) document()        {}
func (d *ComprobanteDonacion) document()          {}
