package mh

import (
	"context"
	"encoding/json"
	"time"

	domainerrors "facturador/pkg/domain-errors"
)

type authRequest struct {
	User string `json:"user"`
	Pwd  string `json:"pwd"`
}

type authResponse struct {
	Status string `json:"status"`
	Body   struct {
		Token string `json:"token"`
	} `json:"body"`
	Token string `json:"token"` // some responses carry it at the top level
}

// Authenticate exchanges Oficina Virtual credentials for an MH session token.
func (c *Client) Authenticate(ctx context.Context, nit, password string) (*TokenInfo, error) {
	start := c.now()
	status, body, err := c.postJSON(ctx, c.endpoints.Auth(), "", authRequest{User: nit, Pwd: password})
	c.metrics.ObserveRequest("auth", time.Since(start))
	if err != nil {
		c.metrics.IncrementRequests("auth", "transport")
		return nil, err
	}

	switch status {
	case 200:
		var parsed authResponse
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
			c.metrics.IncrementRequests("auth", "error")
			return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
				"MH auth returned non-JSON body: %s", excerpt(body))
		}
		token := parsed.Body.Token
		if token == "" {
			token = parsed.Token
		}
		if token == "" {
			c.metrics.IncrementRequests("auth", "error")
			return nil, domainerrors.New(domainerrors.CodeUnexpectedResponse,
				"MH returned 200 but no token in response")
		}
		info := newTokenInfo(token, nit, c.env, c.now())
		c.metrics.IncrementRequests("auth", "ok")
		c.log.Printf("authenticated nit=%s*** token valid until %s",
			safePrefix(nit, 8), info.ExpiresAt.Format(time.RFC3339))
		return info, nil

	case 401:
		c.metrics.IncrementRequests("auth", "rejected")
		return nil, domainerrors.New(domainerrors.CodeInvalidCredentials,
			"invalid credentials; check the NIT and Oficina Virtual password")

	case 403:
		c.metrics.IncrementRequests("auth", "rejected")
		return nil, domainerrors.New(domainerrors.CodeAccessDenied,
			"access denied; the account may be locked or the password expired (rotates every 90 days)")

	default:
		c.metrics.IncrementRequests("auth", "error")
		return nil, domainerrors.Newf(domainerrors.CodeUnexpectedResponse,
			"unexpected MH auth response (HTTP %d): %s", status, excerpt(body))
	}
}

func safePrefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
