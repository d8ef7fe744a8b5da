package sign

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"strings"
	"sync"
	"time"

	domainerrors "facturador/pkg/domain-errors"
)

// CertificateSession owns the private key extracted from an uploaded .p12 for
// the lifetime of one user session. Key material lives only in this struct:
// it is never persisted, and Destroy wipes it. Safe for concurrent use; a
// Destroy racing a Sign either waits for the signature to finish or makes it
// fail with a destroyed-session error, never a partial signature.
type CertificateSession struct {
	mu        sync.Mutex
	key       *rsa.PrivateKey
	cert      *x509.Certificate
	chain     []*x509.Certificate
	loadedAt  time.Time
	destroyed bool
}

// SessionInfo is the inspectable, non-sensitive view of a loaded certificate.
type SessionInfo struct {
	Subject      string    `json:"subject"`
	Issuer       string    `json:"issuer"`
	SerialNumber string    `json:"serial_number"`
	ValidFrom    time.Time `json:"valid_from"`
	ValidTo      time.Time `json:"valid_to"`
	IsValid      bool      `json:"is_valid"`
	NIT          string    `json:"nit_in_cert,omitempty"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// Info returns certificate metadata. Returns an error once destroyed.
func (s *CertificateSession) Info(now time.Time) (SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return SessionInfo{}, errDestroyed()
	}
	return SessionInfo{
		Subject:      s.cert.Subject.String(),
		Issuer:       s.cert.Issuer.String(),
		SerialNumber: fmt.Sprintf("%X", s.cert.SerialNumber),
		ValidFrom:    s.cert.NotBefore,
		ValidTo:      s.cert.NotAfter,
		IsValid:      validAt(s.cert, now),
		NIT:          nitFromSubject(s.cert),
		LoadedAt:     s.loadedAt,
	}, nil
}

// Destroy wipes the private key and marks the session unusable. Idempotent.
func (s *CertificateSession) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	zeroKey(s.key)
	s.key = nil
	s.destroyed = true
}

// Destroyed reports whether Destroy has run.
func (s *CertificateSession) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

func errDestroyed() error {
	return domainerrors.New(domainerrors.CodeSessionDestroyed,
		"certificate session destroyed; upload the certificate again")
}

func validAt(cert *x509.Certificate, now time.Time) bool {
	return !now.Before(cert.NotBefore) && !now.After(cert.NotAfter)
}

// nitFromSubject pulls the holder's NIT out of the certificate subject. DGII
// certificates carry it in serialNumber, some put it in the CN.
func nitFromSubject(cert *x509.Certificate) string {
	if sn := cert.Subject.SerialNumber; sn != "" {
		return sn
	}
	cn := cert.Subject.CommonName
	if strings.ContainsAny(cn, "0123456789") && strings.Contains(cn, "-") {
		return cn
	}
	return ""
}

// zeroKey overwrites the RSA key components before the reference is dropped.
func zeroKey(key *rsa.PrivateKey) {
	if key == nil {
		return
	}
	key.D.SetInt64(0)
	for _, p := range key.Primes {
		p.SetInt64(0)
	}
	key.Precomputed = rsa.PrecomputedValues{}
}
