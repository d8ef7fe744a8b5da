package dte

// Issuer is the emitting taxpayer, configured once per organization. The
// builder projects it into the kind-specific emisor shapes; callers never
// construct wire emisor blocks directly.
type Issuer struct {
	NIT                 string
	NRC                 string
	Nombre              string
	CodActividad        string
	DescActividad       string
	NombreComercial     string // optional
	TipoEstablecimiento string // defaults to "01"
	Departamento        string
	Municipio           string
	Distrito            string // defaults to "01", only kind 07 carries it
	Complemento         string
	Telefono            string
	Correo              string
	CodEstablecimiento  string // defaults to "M001"
	CodPuntoVenta       string // defaults to "P001"
	TipoItemExportacion int    // defaults to 1, only kind 11 carries it
}

// Counterparty is the sealed set of receiver variants. Each document kind
// accepts exactly one variant; shapes are never merged into a superset.
type Counterparty interface{ counterparty() }

// Business is a registered taxpayer (CCF, notes, liquidations, retention).
type Business struct {
	NIT             string
	NRC             string
	Nombre          string
	CodActividad    string
	DescActividad   string
	NombreComercial string
	TipoDocumento   string // defaults to "36" (NIT) where the shape needs it
	NumDocumento    string
	Departamento    string
	Municipio       string
	Distrito        string
	Complemento     string
	Telefono        string
	Correo          string
	// Establishment routing, used only by the accounting liquidation (09).
	TipoEstablecimiento string
	CodigoMH            string
	PuntoVentaMH        string
}

// Consumer is a final consumer or document-identified receiver (01, 04).
type Consumer struct {
	TipoDocumento string // defaults to "36"
	NumDocumento  string
	NRC           string
	Nombre        string
	CodActividad  string
	DescActividad string
	Departamento  string
	Municipio     string
	Complemento   string
	Telefono      string
	Correo        string
	BienTitulo    string // remisión only, defaults to "04"
}

// ForeignBuyer is the export invoice receiver (11).
type ForeignBuyer struct {
	TipoDocumento   string // defaults to "37"
	NumDocumento    string
	Nombre          string
	NombreComercial string
	CodPais         string // defaults to "9300"
	NombrePais      string // defaults to "ESTADOS UNIDOS"
	Complemento     string
	TipoPersona     int // defaults to 1
	DescActividad   string
	Telefono        string
	Correo          string
}

// ExcludedSubject is the receiver of an excluded-subject invoice (14).
type ExcludedSubject struct {
	TipoDocumento string // defaults to "13"
	NumDocumento  string
	Nombre        string
	CodActividad  string
	DescActividad string
	Departamento  string
	Municipio     string
	Complemento   string
	Telefono      string
	Correo        string
}

// Donor gives the donation that a donation receipt (15) acknowledges; the
// issuer acts as donee.
type Donor struct {
	TipoDocumento   string // defaults to "36"
	NumDocumento    string
	NRC             string
	Nombre          string
	NombreComercial string
	CodActividad    string
	DescActividad   string
	Departamento    string
	Municipio       string
	Complemento     string
	Telefono        string
	Correo          string
	CodPais         string // defaults to "9300"
}

func (Business) counterparty()        {}
func (Consumer) counterparty()        {}
func (ForeignBuyer) counterparty()    {}
func (ExcludedSubject) counterparty() {}
func (Donor) counterparty()           {}

// LineItem is one line of the document body. Sale kinds use the price fields;
// the retention receipt (07) and liquidation (08) reference prior documents
// and use the reference fields instead.
type LineItem struct {
	Descripcion    string
	Codigo         string
	PrecioUnitario float64
	Cantidad       float64 // defaults to 1
	Descuento      float64
	TipoItem       int // defaults to 2 (service)
	UniMedida      int // defaults to 59 (unit)

	// Export invoice tribute codes, defaults to ["C3"].
	TributosExport []string

	// Donation value, defaults to PrecioUnitario.
	ValorDonacion float64

	// Retention receipt fields.
	MontoSujeto     float64
	IVARetenido     float64 // defaults to 1% of MontoSujeto
	CodigoRetencion string  // defaults to "22"
	TipoDTERef      string  // defaults to "03"
	TipoGeneracion  int     // defaults to 1
	NumDocumento    string
	FechaEmision    string
}

// DocumentRef points a note or liquidation at the document it amends.
type DocumentRef struct {
	TipoDTE          string // defaults to "03"
	TipoGeneracion   int    // defaults to 2 for notes, 1 for liquidations
	CodigoGeneracion string
	FechaEmision     string // defaults to the emission date
}

// Extension is the optional delivery block shared by several kinds.
type Extension struct {
	NombEntrega *string `json:"nombEntrega"`
	DocuEntrega *string `json:"docuEntrega"`
	CodEmpleado *string `json:"codEmpleado"`
}

// LiquidacionParams drives the accounting liquidation (09) body.
type LiquidacionParams struct {
	FechaInicio        string
	FechaFin           string
	Codigo             string  // defaults to "LIQ-0001"
	CantidadDocs       int     // defaults to 10
	ValorOperaciones   float64 // defaults to 1130.00
	PorcentajeComision float64 // defaults to 5
}

// DonacionParams carries the supporting documents a donation receipt requires.
type DonacionParams struct {
	OtrosDocumentos []DonacionDocumento
}

// DonacionDocumento is one supporting legal document of a donation.
type DonacionDocumento struct {
	CodigoDocumento  string `json:"codigoDocumento"`
	DescDocumento    string `json:"descDocumento"`
	DetalleDocumento string `json:"detalleDocumento"`
}

// Options are the cross-kind build knobs.
type Options struct {
	CondicionOperacion int // defaults to 1 (cash)
	Observaciones      string
	Referencia         *DocumentRef
	Extension          *Extension
	Liquidacion        *LiquidacionParams
	Donacion           *DonacionParams
}
