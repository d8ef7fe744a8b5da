// Package sign loads contributor .p12 certificates and produces the JWS the
// Ministerio de Hacienda expects: a compact RS256 token whose payload is the
// exact canonical JSON of the document.
package sign

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkcs12 "software.sslmate.com/src/go-pkcs12"

	domainerrors "facturador/pkg/domain-errors"
)

// maxCertificateSize bounds uploads; real DGII .p12 files are a few KB.
const maxCertificateSize = 50 * 1024

// jwsHeader is the fixed protected header. The MH validator expects exactly
// these fields in this order.
const jwsHeader = `{"typ":"JWT","alg":"RS256"}`

// Engine loads certificates and signs documents. Stateless apart from its
// logger; sessions carry the key material.
type Engine struct {
	log *log.Logger
	now func() time.Time
}

type EngineOption func(*Engine)

// WithClock fixes the validity-check clock.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{log: logger, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadCertificate parses a .p12 file and returns a session owning its key.
// The password failure case is classified deterministically so callers can
// tell the user to retype it rather than re-upload.
func (e *Engine) LoadCertificate(p12Data []byte, password string) (*CertificateSession, error) {
	if len(p12Data) == 0 {
		return nil, domainerrors.New(domainerrors.CodeInvalidCertificate, "empty .p12 file")
	}
	if len(p12Data) > maxCertificateSize {
		return nil, domainerrors.Newf(domainerrors.CodeInvalidCertificate,
			".p12 file too large: %d bytes", len(p12Data))
	}
	// Every DER PKCS#12 file starts with a SEQUENCE tag.
	if p12Data[0] != 0x30 {
		return nil, domainerrors.New(domainerrors.CodeInvalidCertificate,
			"file is not a DER-encoded .p12")
	}

	key, cert, chain, err := pkcs12.DecodeChain(p12Data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, domainerrors.New(domainerrors.CodeWrongPassword,
				"incorrect password for the .p12 file")
		}
		return nil, domainerrors.Wrap(domainerrors.CodeInvalidCertificate,
			"reading .p12 file", err)
	}
	if key == nil {
		return nil, domainerrors.New(domainerrors.CodeMissingPrivateKey,
			".p12 file contains no private key")
	}
	if cert == nil {
		return nil, domainerrors.New(domainerrors.CodeMissingCertificate,
			".p12 file contains no certificate")
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, domainerrors.Newf(domainerrors.CodeUnsupportedKeyType,
			"unsupported private key type %T, need RSA", key)
	}
	if !validAt(cert, e.now()) {
		return nil, domainerrors.Newf(domainerrors.CodeCertificateExpired,
			"certificate expired on %s; renew it at factura.gob.sv",
			cert.NotAfter.Format("2006-01-02"))
	}

	session := &CertificateSession{
		key:      rsaKey,
		cert:     cert,
		chain:    chain,
		loadedAt: e.now(),
	}
	e.log.Printf("certificate loaded: subject=%q valid_to=%s",
		cert.Subject.String(), cert.NotAfter.Format(time.RFC3339))
	return session, nil
}

// Sign marshals doc and returns the compact JWS header.payload.signature.
// The payload segment decodes to the exact bytes that were signed, so the MH
// (or anyone) can reproduce the canonical document from the token alone.
func (e *Engine) Sign(session *CertificateSession, doc any) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", domainerrors.Wrap(domainerrors.CodeSigningFailed,
			"marshaling document", err)
	}
	return e.signPayload(session, payload)
}

// SignRaw signs pre-marshaled canonical bytes, used when re-transmitting a
// stored document without re-building it.
func (e *Engine) SignRaw(session *CertificateSession, payload []byte) (string, error) {
	return e.signPayload(session, payload)
}

func (e *Engine) signPayload(session *CertificateSession, payload []byte) (string, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.destroyed {
		return "", errDestroyed()
	}
	if !validAt(session.cert, e.now()) {
		return "", domainerrors.New(domainerrors.CodeCertificateExpired,
			"certificate expired; upload a current one")
	}

	signingString := base64.RawURLEncoding.EncodeToString([]byte(jwsHeader)) +
		"." + base64.RawURLEncoding.EncodeToString(payload)
	sig, err := jwt.SigningMethodRS256.Sign(signingString, session.key)
	if err != nil {
		return "", domainerrors.Wrap(domainerrors.CodeSigningFailed, "signing document", err)
	}
	return signingString + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}
