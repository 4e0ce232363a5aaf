package handler

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"tradesim/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, and Content-Type validation middleware.
func NewRouter(registry *service.Registry, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	sessionH := NewSessionHandler(registry)
	socketH := NewSocketHandler(registry, logger)

	// Liveness.
	r.Get("/", sessionH.Root)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Session management.
	r.Get("/traders/defaults", sessionH.Defaults)
	r.Post("/traders/create", sessionH.Create)
	r.Get("/traders/list", sessionH.List)

	// Per-session duplex channel.
	r.Get("/trader/{trader_uuid}", socketH.Serve)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Hijack passes hijacking through to the underlying writer so WebSocket
// upgrades work behind the logging middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT,
// and PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
