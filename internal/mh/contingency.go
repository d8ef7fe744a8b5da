package mh

import (
	"context"

	"facturador/internal/dte"
)

// ContingencyRequest declares an offline emission window and the documents
// issued during it.
type ContingencyRequest struct {
	NITEmisor          string
	NombreEmisor       string
	NombreComercial    string
	CodEstablecimiento string
	CodPuntoVenta      string
	Telefono           string
	Correo             string

	// TipoContingencia: 1 MH outage, 2 issuer outage, ... 5 other.
	TipoContingencia   int
	MotivoContingencia string

	FechaInicio string
	HoraInicio  string
	FechaFin    string
	HoraFin     string

	Detalle []ContingencyDetail
}

// ContingencyDetail references one document emitted during the window.
type ContingencyDetail struct {
	Kind             dte.Kind
	CodigoGeneracion string
	SelloRecibido    string
	NumeroControl    string
	FechaEmision     string
	HoraEmision      string
}

// ContingencyDocument is the version-3 event document sent to
// /fesv/contingencia after signing.
type ContingencyDocument struct {
	Identificacion ContingencyIdent   `json:"identificacion"`
	Emisor         ContingencyEmisor  `json:"emisor"`
	Motivo         ContingencyMotivo  `json:"motivo"`
	DetalleDTE     []ContingencyEntry `json:"detalleDTE"`
}

type ContingencyIdent struct {
	Version          int    `json:"version"`
	Ambiente         string `json:"ambiente"`
	CodigoGeneracion string `json:"codigoGeneracion"`
	FecInicio        string `json:"fecInicio"`
	HorInicio        string `json:"horInicio"`
	FecFin           string `json:"fecFin"`
	HorFin           string `json:"horFin"`
}

type ContingencyEmisor struct {
	NIT                 string `json:"nit"`
	Nombre              string `json:"nombre"`
	TipoEstablecimiento string `json:"tipoEstablecimiento"`
	NomEstablecimiento  string `json:"nomEstablecimiento"`
	CodEstableMH        string `json:"codEstableMH"`
	CodEstable          string `json:"codEstable"`
	CodPuntoVentaMH     string `json:"codPuntoVentaMH"`
	CodPuntoVenta       string `json:"codPuntoVenta"`
	Telefono            string `json:"telefono"`
	Correo              string `json:"correo"`
}

type ContingencyMotivo struct {
	TipoContingencia   int    `json:"tipoContingencia"`
	MotivoContingencia string `json:"motivoContingencia"`
}

type ContingencyEntry struct {
	TipoDte          string  `json:"tipoDte"`
	CodigoGeneracion string  `json:"codigoGeneracion"`
	SelloRecibido    *string `json:"selloRecibido"`
	NumeroControl    string  `json:"numeroControl"`
	FecEmi           string  `json:"fecEmi"`
	HorEmi           string  `json:"horEmi"`
}

// BuildContingencyDocument assembles the event document with a fresh
// generation code.
func (c *Client) BuildContingencyDocument(req ContingencyRequest) (*ContingencyDocument, string) {
	code := dte.NewGenerationCode()

	nomEstablecimiento := req.NombreComercial
	if nomEstablecimiento == "" {
		nomEstablecimiento = req.NombreEmisor
	}
	telefono := req.Telefono
	if telefono == "" {
		telefono = "00000000"
	}

	entries := make([]ContingencyEntry, 0, len(req.Detalle))
	for _, d := range req.Detalle {
		entry := ContingencyEntry{
			TipoDte:          d.Kind.String(),
			CodigoGeneracion: d.CodigoGeneracion,
			NumeroControl:    d.NumeroControl,
			FecEmi:           d.FechaEmision,
			HorEmi:           d.HoraEmision,
		}
		if entry.HorEmi == "" {
			entry.HorEmi = "00:00:00"
		}
		if d.SelloRecibido != "" {
			sello := d.SelloRecibido
			entry.SelloRecibido = &sello
		}
		entries = append(entries, entry)
	}

	return &ContingencyDocument{
		Identificacion: ContingencyIdent{
			Version:          3,
			Ambiente:         c.env.Code(),
			CodigoGeneracion: code,
			FecInicio:        req.FechaInicio,
			HorInicio:        req.HoraInicio,
			FecFin:           req.FechaFin,
			HorFin:           req.HoraFin,
		},
		Emisor: ContingencyEmisor{
			NIT:                 req.NITEmisor,
			Nombre:              req.NombreEmisor,
			TipoEstablecimiento: "01",
			NomEstablecimiento:  nomEstablecimiento,
			CodEstableMH:        req.CodEstablecimiento,
			CodEstable:          req.CodEstablecimiento,
			CodPuntoVentaMH:     req.CodPuntoVenta,
			CodPuntoVenta:       req.CodPuntoVenta,
			Telefono:            telefono,
			Correo:              req.Correo,
		},
		Motivo: ContingencyMotivo{
			TipoContingencia:   req.TipoContingencia,
			MotivoContingencia: req.MotivoContingencia,
		},
		DetalleDTE: entries,
	}, code
}

// NotifyContingency sends a signed contingency event.
func (c *Client) NotifyContingency(ctx context.Context, token *TokenInfo, signedDoc string) (*EventResult, error) {
	return c.sendEvent(ctx, "contingency", c.endpoints.Contingency(), token, eventRequest{
		Ambiente:  token.Environment.Code(),
		IDEnvio:   1,
		Version:   3,
		Documento: signedDoc,
	})
}
