// Package audit records document lifecycle events for compliance review.
// Emission is fail-open: losing an audit event must never fail a transmission.
package audit

import "time"

// Action identifies what happened to a document or session.
type Action string

const (
	ActionDocumentBuilt       Action = "document.built"
	ActionDocumentSigned      Action = "document.signed"
	ActionDocumentTransmitted Action = "document.transmitted"
	ActionDocumentRejected    Action = "document.rejected"
	ActionDocumentQueued      Action = "document.queued"
	ActionDocumentReplayed    Action = "document.replayed"
	ActionDocumentFailed      Action = "document.failed"
	ActionDocumentInvalidated Action = "document.invalidated"
	ActionSessionCreated      Action = "session.created"
	ActionSessionDestroyed    Action = "session.destroyed"
)

// Event is one audit record. Keep it transport-agnostic so sinks can fan out.
type Event struct {
	ID               string    `json:"id"`
	Action           Action    `json:"action"`
	NIT              string    `json:"nit,omitempty"`
	SessionID        string    `json:"sessionId,omitempty"`
	Kind             string    `json:"kind,omitempty"`
	CodigoGeneracion string    `json:"codigoGeneracion,omitempty"`
	SelloRecibido    string    `json:"selloRecibido,omitempty"`
	Detail           string    `json:"detail,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
