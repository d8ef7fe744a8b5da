// Package session holds authenticated MH state server-side: a bearer token
// and, optionally, the loaded signing certificate. Sessions live in memory
// only and are swept when idle or when their token expires.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"facturador/internal/mh"
	"facturador/internal/session/metrics"
	"facturador/internal/sign"
	domainerrors "facturador/pkg/domain-errors"
)

const (
	defaultInactivityTTL = 24 * time.Hour
	defaultSweepInterval = 15 * time.Minute
)

type entry struct {
	token      *mh.TokenInfo
	cert       *sign.CertificateSession
	createdAt  time.Time
	lastAccess time.Time
}

// Snapshot is what a caller gets back from Get: the session's identifiers and
// live references, valid until the session is evicted.
type Snapshot struct {
	ID          string
	Token       *mh.TokenInfo
	Certificate *sign.CertificateSession
	CreatedAt   time.Time
}

// Manager owns all live sessions. Safe for concurrent use. At most one
// certificate is attached per session; attaching a replacement destroys the
// previous one.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl     time.Duration
	log     *log.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	sweepEvery time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

type Option func(*Manager)

// WithInactivityTTL overrides how long an untouched session survives.
func WithInactivityTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithSweepInterval overrides how often the background sweep runs.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) { m.sweepEvery = d }
}

// WithMetrics attaches session metrics.
func WithMetrics(met *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = met }
}

// WithClock fixes the expiry clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a running manager; callers must Close it to stop the
// sweep goroutine and destroy remaining certificates.
func NewManager(logger *log.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions:   make(map[string]*entry),
		ttl:        defaultInactivityTTL,
		log:        logger,
		now:        time.Now,
		sweepEvery: defaultSweepInterval,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.sweepLoop()
	return m
}

// Create registers a session for an authenticated token. cert may be nil when
// the caller has not loaded a certificate yet.
func (m *Manager) Create(token *mh.TokenInfo, cert *sign.CertificateSession) string {
	id := uuid.NewString()
	now := m.now()

	m.mu.Lock()
	m.sessions[id] = &entry{token: token, cert: cert, createdAt: now, lastAccess: now}
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetActive(n)
	m.log.Printf("session created id=%s nit=%s", id[:8], token.NIT)
	return id
}

// Get returns the session and refreshes its last-access time. An expired
// token evicts the session, destroying its certificate.
func (m *Manager) Get(id string) (*Snapshot, error) {
	now := m.now()

	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, domainerrors.New(domainerrors.CodeSessionNotFound, "unknown session")
	}
	if e.token.Expired(now) {
		delete(m.sessions, id)
		n := len(m.sessions)
		cert := e.cert
		m.mu.Unlock()

		if cert != nil {
			cert.Destroy()
		}
		m.metrics.SetActive(n)
		m.metrics.IncrementEvictions("token_expired")
		return nil, domainerrors.New(domainerrors.CodeSessionExpired,
			"MH token expired; authenticate again")
	}
	e.lastAccess = now
	snap := &Snapshot{ID: id, Token: e.token, Certificate: e.cert, CreatedAt: e.createdAt}
	m.mu.Unlock()
	return snap, nil
}

// AttachCertificate binds cert to the session, destroying any certificate
// already attached.
func (m *Manager) AttachCertificate(id string, cert *sign.CertificateSession) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return domainerrors.New(domainerrors.CodeSessionNotFound, "unknown session")
	}
	previous := e.cert
	e.cert = cert
	e.lastAccess = m.now()
	m.mu.Unlock()

	if previous != nil {
		previous.Destroy()
	}
	return nil
}

// RefreshToken swaps in a newly obtained token, keeping the certificate.
func (m *Manager) RefreshToken(id string, token *mh.TokenInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return domainerrors.New(domainerrors.CodeSessionNotFound, "unknown session")
	}
	e.token = token
	e.lastAccess = m.now()
	return nil
}

// Destroy evicts one session, destroying its certificate. Unknown IDs are a
// no-op so logout is idempotent.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if ok {
		if e.cert != nil {
			e.cert.Destroy()
		}
		m.metrics.SetActive(n)
		m.metrics.IncrementEvictions("logout")
	}
}

// Count reports live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle beyond the inactivity TTL or holding an expired
// token, and returns how many were removed. The background loop calls this;
// it is exported so operators can force a pass.
func (m *Manager) Sweep() int {
	now := m.now()
	var victims []*entry

	m.mu.Lock()
	for id, e := range m.sessions {
		idle := now.Sub(e.lastAccess) >= m.ttl
		if idle || e.token.Expired(now) {
			delete(m.sessions, id)
			victims = append(victims, e)
			if idle {
				m.metrics.IncrementEvictions("idle")
			} else {
				m.metrics.IncrementEvictions("token_expired")
			}
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, e := range victims {
		if e.cert != nil {
			e.cert.Destroy()
		}
	}
	if len(victims) > 0 {
		m.metrics.SetActive(n)
		m.log.Printf("session sweep evicted %d, %d live", len(victims), n)
	}
	return len(victims)
}

// Close stops the sweep loop and destroys every remaining session.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)

		m.mu.Lock()
		remaining := m.sessions
		m.sessions = make(map[string]*entry)
		m.mu.Unlock()

		for _, e := range remaining {
			if e.cert != nil {
				e.cert.Destroy()
			}
		}
		m.metrics.SetActive(0)
	})
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(m.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
