package dte

// Wire shapes shared by several document kinds. Field order matters: the
// canonical bytes that get signed are the JSON marshaling of these structs,
// and the certified layout is preserved as declared here.

// Direccion is the standard address block.
type Direccion struct {
	Departamento string `json:"departamento"`
	Municipio    string `json:"municipio"`
	Complemento  string `json:"complemento"`
}

// DireccionDistrito adds the district, required only by the retention receipt.
type DireccionDistrito struct {
	Departamento string `json:"departamento"`
	Municipio    string `json:"municipio"`
	Distrito     string `json:"distrito"`
	Complemento  string `json:"complemento"`
}

// Identificacion heads every sale-like document (01, 03, 04, 05, 06, 07, 14).
type Identificacion struct {
	Version          int     `json:"version"`
	Ambiente         string  `json:"ambiente"`
	TipoDte          string  `json:"tipoDte"`
	NumeroControl    string  `json:"numeroControl"`
	CodigoGeneracion string  `json:"codigoGeneracion"`
	TipoModelo       int     `json:"tipoModelo"`
	TipoOperacion    int     `json:"tipoOperacion"`
	TipoContingencia *int    `json:"tipoContingencia"`
	MotivoContin     *string `json:"motivoContin"`
	FecEmi           string  `json:"fecEmi"`
	HorEmi           string  `json:"horEmi"`
	TipoMoneda       string  `json:"tipoMoneda"`
}

// IdentificacionBasica omits the contingency pair; the liquidation kinds
// (08, 09) reject those keys outright.
type IdentificacionBasica struct {
	Version          int    `json:"version"`
	Ambiente         string `json:"ambiente"`
	TipoDte          string `json:"tipoDte"`
	NumeroControl    string `json:"numeroControl"`
	CodigoGeneracion string `json:"codigoGeneracion"`
	TipoModelo       int    `json:"tipoModelo"`
	TipoOperacion    int    `json:"tipoOperacion"`
	FecEmi           string `json:"fecEmi"`
	HorEmi           string `json:"horEmi"`
	TipoMoneda       string `json:"tipoMoneda"`
}

// IdentificacionExportacion is the export invoice header. The schema spells
// the contingency reason "motivoContigencia"; the typo is the MH's, not ours.
type IdentificacionExportacion struct {
	Version           int     `json:"version"`
	Ambiente          string  `json:"ambiente"`
	TipoDte           string  `json:"tipoDte"`
	NumeroControl     string  `json:"numeroControl"`
	CodigoGeneracion  string  `json:"codigoGeneracion"`
	TipoModelo        int     `json:"tipoModelo"`
	TipoOperacion     int     `json:"tipoOperacion"`
	TipoContingencia  *int    `json:"tipoContingencia"`
	MotivoContigencia *string `json:"motivoContigencia"`
	FecEmi            string  `json:"fecEmi"`
	HorEmi            string  `json:"horEmi"`
	TipoMoneda        string  `json:"tipoMoneda"`
}

// EmisorEstandar is the issuer block for 01, 03, 04 and 08.
type EmisorEstandar struct {
	NIT                 string    `json:"nit"`
	NRC                 string    `json:"nrc"`
	Nombre              string    `json:"nombre"`
	CodActividad        string    `json:"codActividad"`
	DescActividad       string    `json:"descActividad"`
	NombreComercial     *string   `json:"nombreComercial"`
	TipoEstablecimiento string    `json:"tipoEstablecimiento"`
	Direccion           Direccion `json:"direccion"`
	Telefono            string    `json:"telefono"`
	Correo              string    `json:"correo"`
	CodEstableMH        string    `json:"codEstableMH"`
	CodEstable          string    `json:"codEstable"`
	CodPuntoVentaMH     string    `json:"codPuntoVentaMH"`
	CodPuntoVenta       string    `json:"codPuntoVenta"`
}

// EmisorNota drops the establishment codes; the note schemas (05, 06) reject
// codEstableMH/codEstable.
type EmisorNota struct {
	NIT                 string    `json:"nit"`
	NRC                 string    `json:"nrc"`
	Nombre              string    `json:"nombre"`
	CodActividad        string    `json:"codActividad"`
	DescActividad       string    `json:"descActividad"`
	NombreComercial     *string   `json:"nombreComercial"`
	TipoEstablecimiento string    `json:"tipoEstablecimiento"`
	Direccion           Direccion `json:"direccion"`
	Telefono            string    `json:"telefono"`
	Correo              string    `json:"correo"`
}

// EmisorRetencion (07): no tipoEstablecimiento, district address, plain
// codEstable/codPuntoVenta.
type EmisorRetencion struct {
	NIT             string            `json:"nit"`
	NRC             string            `json:"nrc"`
	Nombre          string            `json:"nombre"`
	CodActividad    string            `json:"codActividad"`
	DescActividad   string            `json:"descActividad"`
	NombreComercial *string           `json:"nombreComercial"`
	Direccion       DireccionDistrito `json:"direccion"`
	Telefono        string            `json:"telefono"`
	Correo          string            `json:"correo"`
	CodEstable      string            `json:"codEstable"`
	CodPuntoVenta   string            `json:"codPuntoVenta"`
}

// EmisorLiquidacionContable (09) names its establishment fields differently
// from every other kind.
type EmisorLiquidacionContable struct {
	NIT                 string    `json:"nit"`
	NRC                 string    `json:"nrc"`
	Nombre              string    `json:"nombre"`
	CodActividad        string    `json:"codActividad"`
	DescActividad       string    `json:"descActividad"`
	NombreComercial     *string   `json:"nombreComercial"`
	TipoEstablecimiento string    `json:"tipoEstablecimiento"`
	Direccion           Direccion `json:"direccion"`
	Telefono            string    `json:"telefono"`
	Correo              string    `json:"correo"`
	CodigoMH            string    `json:"codigoMH"`
	Codigo              string    `json:"codigo"`
	PuntoVentaMH        string    `json:"puntoVentaMH"`
	PuntoVentaContri    string    `json:"puntoVentaContri"`
}

// EmisorExportacion extends the standard issuer with export routing flags.
type EmisorExportacion struct {
	EmisorEstandar
	TipoItemExpor int     `json:"tipoItemExpor"`
	RecintoFiscal *string `json:"recintoFiscal"`
	Regimen       *string `json:"regimen"`
}

// EmisorSujetoExcluido (14): no nombreComercial, no tipoEstablecimiento.
type EmisorSujetoExcluido struct {
	NIT             string    `json:"nit"`
	NRC             string    `json:"nrc"`
	Nombre          string    `json:"nombre"`
	CodActividad    string    `json:"codActividad"`
	DescActividad   string    `json:"descActividad"`
	Direccion       Direccion `json:"direccion"`
	Telefono        string    `json:"telefono"`
	Correo          string    `json:"correo"`
	CodEstableMH    string    `json:"codEstableMH"`
	CodEstable      string    `json:"codEstable"`
	CodPuntoVentaMH string    `json:"codPuntoVentaMH"`
	CodPuntoVenta   string    `json:"codPuntoVenta"`
}

// ReceptorFactura identifies a consumer by document type and number.
type ReceptorFactura struct {
	TipoDocumento string    `json:"tipoDocumento"`
	NumDocumento  *string   `json:"numDocumento"`
	NRC           *string   `json:"nrc"`
	Nombre        string    `json:"nombre"`
	CodActividad  *string   `json:"codActividad"`
	DescActividad *string   `json:"descActividad"`
	Direccion     Direccion `json:"direccion"`
	Telefono      *string   `json:"telefono"`
	Correo        *string   `json:"correo"`
}

// ReceptorCCF identifies a registered taxpayer by NIT.
type ReceptorCCF struct {
	NIT             string    `json:"nit"`
	NRC             string    `json:"nrc"`
	Nombre          string    `json:"nombre"`
	CodActividad    string    `json:"codActividad"`
	DescActividad   string    `json:"descActividad"`
	NombreComercial *string   `json:"nombreComercial"`
	Direccion       Direccion `json:"direccion"`
	Telefono        *string   `json:"telefono"`
	Correo          *string   `json:"correo"`
}

// ReceptorRemision (04) adds the mandatory bienTitulo.
type ReceptorRemision struct {
	TipoDocumento   string    `json:"tipoDocumento"`
	NumDocumento    string    `json:"numDocumento"`
	NRC             *string   `json:"nrc"`
	Nombre          string    `json:"nombre"`
	CodActividad    *string   `json:"codActividad"`
	DescActividad   *string   `json:"descActividad"`
	NombreComercial *string   `json:"nombreComercial"`
	Direccion       Direccion `json:"direccion"`
	Telefono        *string   `json:"telefono"`
	Correo          *string   `json:"correo"`
	BienTitulo      string    `json:"bienTitulo"`
}

// ReceptorRetencion (07) uses document identification plus a district address.
type ReceptorRetencion struct {
	TipoDocumento   string            `json:"tipoDocumento"`
	NumDocumento    string            `json:"numDocumento"`
	NRC             *string           `json:"nrc"`
	Nombre          string            `json:"nombre"`
	NombreComercial *string           `json:"nombreComercial"`
	CodActividad    string            `json:"codActividad"`
	DescActividad   string            `json:"descActividad"`
	Direccion       DireccionDistrito `json:"direccion"`
	Telefono        *string           `json:"telefono"`
	Correo          *string           `json:"correo"`
}

// ReceptorLiquidacionContable (09) extends the CCF receiver with
// establishment routing.
type ReceptorLiquidacionContable struct {
	ReceptorCCF
	TipoEstablecimiento string  `json:"tipoEstablecimiento"`
	CodigoMH            *string `json:"codigoMH"`
	PuntoVentaMH        *string `json:"puntoVentaMH"`
}

// ReceptorExportacion (11) identifies a foreign buyer.
type ReceptorExportacion struct {
	TipoDocumento   string  `json:"tipoDocumento"`
	NumDocumento    string  `json:"numDocumento"`
	Nombre          string  `json:"nombre"`
	NombreComercial *string `json:"nombreComercial"`
	CodPais         string  `json:"codPais"`
	NombrePais      string  `json:"nombrePais"`
	Complemento     string  `json:"complemento"`
	TipoPersona     int     `json:"tipoPersona"`
	DescActividad   string  `json:"descActividad"`
	Telefono        *string `json:"telefono"`
	Correo          *string `json:"correo"`
}

// SujetoExcluidoBlock (14) replaces the receptor key entirely.
type SujetoExcluidoBlock struct {
	TipoDocumento string    `json:"tipoDocumento"`
	NumDocumento  string    `json:"numDocumento"`
	Nombre        string    `json:"nombre"`
	CodActividad  *string   `json:"codActividad"`
	DescActividad *string   `json:"descActividad"`
	Direccion     Direccion `json:"direccion"`
	Telefono      *string   `json:"telefono"`
	Correo        *string   `json:"correo"`
}

// Donante (15) is the giving party.
type Donante struct {
	TipoDocumento   string    `json:"tipoDocumento"`
	NumDocumento    string    `json:"numDocumento"`
	NRC             *string   `json:"nrc"`
	Nombre          string    `json:"nombre"`
	NombreComercial *string   `json:"nombreComercial"`
	CodActividad    *string   `json:"codActividad"`
	DescActividad   *string   `json:"descActividad"`
	Direccion       Direccion `json:"direccion"`
	Telefono        *string   `json:"telefono"`
	Correo          *string   `json:"correo"`
	CodPais         string    `json:"codPais"`
}

// Donatario (15) is the issuer acting as receiving party.
type Donatario struct {
	NIT             string    `json:"nit"`
	NRC             string    `json:"nrc"`
	Nombre          string    `json:"nombre"`
	NombreComercial *string   `json:"nombreComercial"`
	CodActividad    string    `json:"codActividad"`
	DescActividad   string    `json:"descActividad"`
	Direccion       Direccion `json:"direccion"`
	Telefono        string    `json:"telefono"`
	Correo          string    `json:"correo"`
	CodEstable      string    `json:"codEstable"`
	CodPuntoVenta   string    `json:"codPuntoVenta"`
}

// DocumentoRelacionado references the amended document from a note.
type DocumentoRelacionado struct {
	TipoDocumento   string `json:"tipoDocumento"`
	TipoGeneracion  int    `json:"tipoGeneracion"`
	NumeroDocumento string `json:"numeroDocumento"`
	FechaEmision    string `json:"fechaEmision"`
}

// Pago is one entry of the resumen pagos array.
type Pago struct {
	Codigo     string  `json:"codigo"`
	MontoPago  float64 `json:"montoPago"`
	Referencia string  `json:"referencia"`
	Plazo      *string `json:"plazo"`
	Periodo    *int    `json:"periodo"`
}

// TributoResumen is one entry of the resumen tributos array.
type TributoResumen struct {
	Codigo      string  `json:"codigo"`
	Descripcion string  `json:"descripcion"`
	Valor       float64 `json:"valor"`
}

func cashPayment(total float64) []Pago {
	return []Pago{{Codigo: "01", MontoPago: total, Referencia: ""}}
}

func ivaTributos(iva float64) []TributoResumen {
	return []TributoResumen{{Codigo: ivaTributeCode, Descripcion: ivaTributeDescription, Valor: iva}}
}
