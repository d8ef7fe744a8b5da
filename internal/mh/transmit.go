package mh

import (
	"context"
	"encoding/json"
	"time"

	"facturador/internal/dte"
	domainerrors "facturador/pkg/domain-errors"
)

const (
	transmitAttempts = 3
	maxRetryDelay    = 60 * time.Second
)

// estadoProcesado is the MH acceptance state.
const estadoProcesado = "PROCESADO"

type receptionRequest struct {
	Ambiente         string `json:"ambiente"`
	IDEnvio          int    `json:"idEnvio"`
	Version          int    `json:"version"`
	TipoDte          string `json:"tipoDte"`
	Documento        string `json:"documento"`
	CodigoGeneracion string `json:"codigoGeneracion"`
}

type receiptWire struct {
	Estado           string          `json:"estado"`
	SelloRecibido    *string         `json:"selloRecibido"`
	CodigoGeneracion string          `json:"codigoGeneracion"`
	FhProcesamiento  string          `json:"fhProcesamiento"`
	ClasificaMsg     string          `json:"clasificaMsg"`
	CodigoMsg        string          `json:"codigoMsg"`
	DescripcionMsg   string          `json:"descripcionMsg"`
	Observaciones    json.RawMessage `json:"observaciones"`
}

// Receipt is the MH's answer to a reception request.
type Receipt struct {
	Estado           string
	SelloRecibido    string
	CodigoGeneracion string
	FhProcesamiento  string
	ClasificaMsg     string
	CodigoMsg        string
	DescripcionMsg   string
	Observaciones    []string
	Raw              json.RawMessage
}

// Accepted reports whether the MH stamped the document.
func (r *Receipt) Accepted() bool { return r.Estado == estadoProcesado }

// Transmit sends a signed document for reception. Transport failures are
// retried up to three attempts with capped exponential backoff; anything the
// MH actually answered (including rejections) is returned immediately.
func (c *Client) Transmit(ctx context.Context, token *TokenInfo, kind dte.Kind, signedDoc, codigoGeneracion string) (*Receipt, error) {
	if token.Expired(c.now()) {
		return nil, domainerrors.New(domainerrors.CodeSessionExpired,
			"MH token expired; re-authenticate")
	}
	payload := receptionRequest{
		Ambiente:         token.Environment.Code(),
		IDEnvio:          1,
		Version:          kind.ReceptionVersion(),
		TipoDte:          kind.String(),
		Documento:        signedDoc,
		CodigoGeneracion: codigoGeneracion,
	}

	var lastErr error
	for attempt := 1; attempt <= transmitAttempts; attempt++ {
		start := c.now()
		status, body, err := c.postJSON(ctx, c.endpoints.Reception(), token.Bearer(), payload)
		c.metrics.ObserveRequest("transmit", time.Since(start))

		if err == nil {
			return c.parseReceipt(status, body, codigoGeneracion)
		}
		if !transportFailure(err) {
			c.metrics.IncrementRequests("transmit", "error")
			return nil, err
		}
		lastErr = err
		c.metrics.IncrementRequests("transmit", "transport")
		c.log.Printf("transmit attempt %d/%d failed: %v", attempt, transmitAttempts, err)

		if attempt < transmitAttempts {
			c.metrics.IncrementTransmitRetries()
			if sleepErr := c.sleep(ctx, retryDelay(attempt)); sleepErr != nil {
				return nil, domainerrors.Wrap(domainerrors.CodeTransport,
					"transmission canceled", sleepErr)
			}
		}
	}
	return nil, lastErr
}

// retryDelay is 2^attempt seconds capped at one minute: 2s, 4s, ...
func retryDelay(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

func (c *Client) parseReceipt(status int, body []byte, codigoGeneracion string) (*Receipt, error) {
	var wire receiptWire
	if err := json.Unmarshal(body, &wire); err != nil {
		// The MH serves HTML error pages during maintenance.
		c.metrics.IncrementRequests("transmit", "error")
		return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
			"MH returned a non-JSON response (HTTP %d): %s", status, excerpt(body))
	}

	switch status {
	case 200:
		receipt := &Receipt{
			Estado:           wire.Estado,
			CodigoGeneracion: wire.CodigoGeneracion,
			FhProcesamiento:  wire.FhProcesamiento,
			ClasificaMsg:     wire.ClasificaMsg,
			CodigoMsg:        wire.CodigoMsg,
			DescripcionMsg:   wire.DescripcionMsg,
			Observaciones:    flattenObservations(wire.Observaciones),
			Raw:              append(json.RawMessage(nil), body...),
		}
		if wire.SelloRecibido != nil {
			receipt.SelloRecibido = *wire.SelloRecibido
		}
		if receipt.CodigoGeneracion == "" {
			receipt.CodigoGeneracion = codigoGeneracion
		}
		if receipt.Accepted() {
			c.metrics.IncrementRequests("transmit", "ok")
			c.log.Printf("DTE accepted: codGen=%s... sello=%s",
				safePrefix(codigoGeneracion, 8), safePrefix(receipt.SelloRecibido, 16))
		} else {
			c.metrics.IncrementRequests("transmit", "rejected")
			c.log.Printf("DTE estado=%s: codGen=%s... obs=%v",
				receipt.Estado, safePrefix(codigoGeneracion, 8), receipt.Observaciones)
		}
		return receipt, nil

	case 401:
		c.metrics.IncrementRequests("transmit", "rejected")
		return nil, domainerrors.New(domainerrors.CodeSessionExpired,
			"MH token invalid or expired; re-authenticate")

	case 400:
		c.metrics.IncrementRequests("transmit", "rejected")
		msg := wire.DescripcionMsg
		if msg == "" {
			msg = "validation error"
		}
		return nil, domainerrors.New(domainerrors.CodeRejected, "MH rejected the document: "+msg).
			WithObservations(flattenObservations(wire.Observaciones))

	default:
		c.metrics.IncrementRequests("transmit", "error")
		msg := wire.DescripcionMsg
		if msg == "" {
			msg = excerpt(body)
		}
		return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
			"MH error (HTTP %d): %s", status, msg)
	}
}
