package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the gateway's timeouts. WriteTimeout leaves
// room for multipart registration uploads relayed to the backend.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
