package mh

import "time"

// Token validity announced by the MH is 24h production / 48h test; the
// stored expiry keeps a two-hour safety margin so a token is never used
// right at the edge.
const (
	tokenTTLProduction = 22 * time.Hour
	tokenTTLTest       = 46 * time.Hour
)

// TokenInfo is an MH session token bound to one NIT and environment. Held in
// memory only.
type TokenInfo struct {
	Token       string
	NIT         string
	Environment Environment
	ObtainedAt  time.Time
	ExpiresAt   time.Time
}

func newTokenInfo(token, nit string, env Environment, now time.Time) *TokenInfo {
	ttl := tokenTTLTest
	if env == EnvProduction {
		ttl = tokenTTLProduction
	}
	return &TokenInfo{
		Token:       token,
		NIT:         nit,
		Environment: env,
		ObtainedAt:  now,
		ExpiresAt:   now.Add(ttl),
	}
}

// Expired reports whether the token should no longer be used.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Bearer returns the Authorization header value.
func (t *TokenInfo) Bearer() string { return "Bearer " + t.Token }
