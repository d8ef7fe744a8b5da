package mh

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"facturador/internal/dte"
	domainerrors "facturador/pkg/domain-errors"
)

type queryRequest struct {
	NITEmisor        string `json:"nitEmisor"`
	TDte             string `json:"tdte"`
	CodigoGeneracion string `json:"codigoGeneracion"`
}

// QueryResult reports whether a document exists at the MH and its stamp.
type QueryResult struct {
	Found           bool
	SelloRecibido   string
	FhProcesamiento string
	Raw             json.RawMessage
}

type queryWire struct {
	Estado          string  `json:"estado"`
	SelloRecibido   *string `json:"selloRecibido"`
	FhProcesamiento string  `json:"fhProcesamiento"`
	CodigoMsg       string  `json:"codigoMsg"`
	DescripcionMsg  string  `json:"descripcionMsg"`
}

// Query looks up a document by generation code. A missing document is a
// normal result, not an error: the MH signals it with a 404, estado
// "NO ENCONTRADO", or message codes 004/005 depending on the backend.
func (c *Client) Query(ctx context.Context, token *TokenInfo, nitEmisor string, kind dte.Kind, codigoGeneracion string) (*QueryResult, error) {
	start := c.now()
	status, body, err := c.postJSON(ctx, c.endpoints.Query(), token.Bearer(),
		queryRequest{NITEmisor: nitEmisor, TDte: kind.String(), CodigoGeneracion: codigoGeneracion})
	c.metrics.ObserveRequest("query", time.Since(start))
	if err != nil {
		c.metrics.IncrementRequests("query", "transport")
		return nil, err
	}

	var wire queryWire
	jsonOK := json.Unmarshal(body, &wire) == nil

	if status == 404 || (jsonOK && notFoundAnswer(wire)) {
		c.metrics.IncrementRequests("query", "ok")
		return &QueryResult{Found: false, Raw: append(json.RawMessage(nil), body...)}, nil
	}

	switch status {
	case 200:
		result := &QueryResult{
			Found:           true,
			FhProcesamiento: wire.FhProcesamiento,
			Raw:             append(json.RawMessage(nil), body...),
		}
		if wire.SelloRecibido != nil {
			result.SelloRecibido = *wire.SelloRecibido
		}
		c.metrics.IncrementRequests("query", "ok")
		return result, nil

	case 401:
		c.metrics.IncrementRequests("query", "rejected")
		return nil, domainerrors.New(domainerrors.CodeSessionExpired,
			"MH token invalid or expired; re-authenticate")

	default:
		c.metrics.IncrementRequests("query", "error")
		return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
			"unexpected MH query response (HTTP %d): %s", status, excerpt(body))
	}
}

func notFoundAnswer(wire queryWire) bool {
	if strings.EqualFold(wire.Estado, "NO ENCONTRADO") {
		return true
	}
	if wire.CodigoMsg == "004" || wire.CodigoMsg == "005" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(wire.DescripcionMsg), "no encontrado")
}
