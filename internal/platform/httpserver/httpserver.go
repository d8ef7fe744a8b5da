package httpserver

import (
	"net/http"
	"time"
)

// New builds the operational HTTP server. The surface is /healthz and
// /metrics only, so timeouts can be tight.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
