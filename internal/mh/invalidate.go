package mh

import (
	"context"
	"encoding/json"
	"time"

	"facturador/internal/dte"
	domainerrors "facturador/pkg/domain-errors"
)

// InvalidationRequest identifies the stamped document to annul and who is
// responsible for the annulment.
type InvalidationRequest struct {
	NITEmisor    string
	NombreEmisor string

	Kind             dte.Kind
	CodigoGeneracion string
	SelloRecibido    string
	NumeroControl    string
	FechaEmision     string
	MontoIVA         float64

	TipoDocumentoReceptor string
	NumDocumentoReceptor  string
	NombreReceptor        string

	// TipoAnulacion: 1 operation error, 2 information error, 3 other.
	TipoAnulacion int
	Motivo        string

	NombreResponsable  string
	TipoDocResponsable string
	NumDocResponsable  string

	// Requesting party; defaults to the responsible party when empty.
	NombreSolicita  string
	TipoDocSolicita string
	NumDocSolicita  string
}

// InvalidationDocument is the version-2 event document that gets signed and
// sent to /fesv/anulardte.
type InvalidationDocument struct {
	Identificacion InvalidationIdent  `json:"identificacion"`
	Emisor         InvalidationEmisor `json:"emisor"`
	Documento      InvalidationTarget `json:"documento"`
	Motivo         InvalidationMotivo `json:"motivo"`
}

type InvalidationIdent struct {
	Version          int    `json:"version"`
	Ambiente         string `json:"ambiente"`
	CodigoGeneracion string `json:"codigoGeneracion"`
	FecAnula         string `json:"fecAnula"`
	HorAnula         string `json:"horAnula"`
}

type InvalidationEmisor struct {
	NIT                 string `json:"nit"`
	Nombre              string `json:"nombre"`
	TipoEstablecimiento string `json:"tipoEstablecimiento"`
}

type InvalidationTarget struct {
	TipoDte           string  `json:"tipoDte"`
	CodigoGeneracion  string  `json:"codigoGeneracion"`
	SelloRecibido     string  `json:"selloRecibido"`
	NumeroControl     string  `json:"numeroControl"`
	FecEmi            string  `json:"fecEmi"`
	MontoIVA          float64 `json:"montoIva"`
	CodigoGeneracionR *string `json:"codigoGeneracionR"`
	TipoDocumento     string  `json:"tipoDocumento"`
	NumDocumento      string  `json:"numDocumento"`
	Nombre            string  `json:"nombre"`
}

type InvalidationMotivo struct {
	TipoAnulacion     int    `json:"tipoAnulacion"`
	MotivoAnulacion   string `json:"motivoAnulacion"`
	NombreResponsable string `json:"nombreResponsable"`
	TipDocResponsable string `json:"tipDocResponsable"`
	NumDocResponsable string `json:"numDocResponsable"`
	NombreSolicita    string `json:"nombreSolicita"`
	TipDocSolicita    string `json:"tipDocSolicita"`
	NumDocSolicita    string `json:"numDocSolicita"`
}

// BuildInvalidationDocument assembles the event document with a fresh
// generation code, which is also returned so the caller can track the event.
func (c *Client) BuildInvalidationDocument(req InvalidationRequest) (*InvalidationDocument, string) {
	now := c.now().UTC()
	code := dte.NewGenerationCode()

	solicitaNombre := req.NombreSolicita
	solicitaTipo := req.TipoDocSolicita
	solicitaNum := req.NumDocSolicita
	if solicitaNombre == "" {
		solicitaNombre = req.NombreResponsable
		solicitaTipo = req.TipoDocResponsable
		solicitaNum = req.NumDocResponsable
	}

	return &InvalidationDocument{
		Identificacion: InvalidationIdent{
			Version:          2,
			Ambiente:         c.env.Code(),
			CodigoGeneracion: code,
			FecAnula:         now.Format("2006-01-02"),
			HorAnula:         now.Format("15:04:05"),
		},
		Emisor: InvalidationEmisor{
			NIT:                 req.NITEmisor,
			Nombre:              req.NombreEmisor,
			TipoEstablecimiento: "01",
		},
		Documento: InvalidationTarget{
			TipoDte:          req.Kind.String(),
			CodigoGeneracion: req.CodigoGeneracion,
			SelloRecibido:    req.SelloRecibido,
			NumeroControl:    req.NumeroControl,
			FecEmi:           req.FechaEmision,
			MontoIVA:         req.MontoIVA,
			TipoDocumento:    req.TipoDocumentoReceptor,
			NumDocumento:     req.NumDocumentoReceptor,
			Nombre:           req.NombreReceptor,
		},
		Motivo: InvalidationMotivo{
			TipoAnulacion:     req.TipoAnulacion,
			MotivoAnulacion:   req.Motivo,
			NombreResponsable: req.NombreResponsable,
			TipDocResponsable: req.TipoDocResponsable,
			NumDocResponsable: req.NumDocResponsable,
			NombreSolicita:    solicitaNombre,
			TipDocSolicita:    solicitaTipo,
			NumDocSolicita:    solicitaNum,
		},
	}, code
}

type eventRequest struct {
	Ambiente  string `json:"ambiente"`
	IDEnvio   int    `json:"idEnvio"`
	Version   int    `json:"version"`
	Documento string `json:"documento"`
}

// EventResult is the MH's answer to an invalidation or contingency event.
type EventResult struct {
	Estado          string
	SelloRecibido   string
	FhProcesamiento string
	DescripcionMsg  string
	Observaciones   []string
	Raw             json.RawMessage
}

// Accepted reports whether the MH processed the event.
func (r *EventResult) Accepted() bool { return r.Estado == estadoProcesado }

// Invalidate sends a signed invalidation event. The document must already be
// signed with the contributor's certificate.
func (c *Client) Invalidate(ctx context.Context, token *TokenInfo, signedDoc string) (*EventResult, error) {
	return c.sendEvent(ctx, "invalidate", c.endpoints.Invalidation(), token, eventRequest{
		Ambiente:  token.Environment.Code(),
		IDEnvio:   1,
		Version:   2,
		Documento: signedDoc,
	})
}

func (c *Client) sendEvent(ctx context.Context, operation, url string, token *TokenInfo, payload eventRequest) (*EventResult, error) {
	if token.Expired(c.now()) {
		return nil, domainerrors.New(domainerrors.CodeSessionExpired,
			"MH token expired; re-authenticate")
	}
	start := c.now()
	status, body, err := c.postJSON(ctx, url, token.Bearer(), payload)
	c.metrics.ObserveRequest(operation, time.Since(start))
	if err != nil {
		c.metrics.IncrementRequests(operation, "transport")
		return nil, err
	}

	var wire receiptWire
	if jsonErr := json.Unmarshal(body, &wire); jsonErr != nil {
		c.metrics.IncrementRequests(operation, "error")
		return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
			"MH returned a non-JSON response (HTTP %d): %s", status, excerpt(body))
	}

	switch status {
	case 200:
		result := &EventResult{
			Estado:          wire.Estado,
			FhProcesamiento: wire.FhProcesamiento,
			DescripcionMsg:  wire.DescripcionMsg,
			Observaciones:   flattenObservations(wire.Observaciones),
			Raw:             append(json.RawMessage(nil), body...),
		}
		if wire.SelloRecibido != nil {
			result.SelloRecibido = *wire.SelloRecibido
		}
		c.metrics.IncrementRequests(operation, "ok")
		return result, nil

	case 401:
		c.metrics.IncrementRequests(operation, "rejected")
		return nil, domainerrors.New(domainerrors.CodeSessionExpired,
			"MH token invalid or expired; re-authenticate")

	case 400:
		c.metrics.IncrementRequests(operation, "rejected")
		msg := wire.DescripcionMsg
		if msg == "" {
			msg = "validation error"
		}
		return nil, domainerrors.New(domainerrors.CodeRejected, "MH rejected the event: "+msg).
			WithObservations(flattenObservations(wire.Observaciones))

	default:
		c.metrics.IncrementRequests(operation, "error")
		return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
			"MH error (HTTP %d): %s", status, excerpt(body))
	}
}
