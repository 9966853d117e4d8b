package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nivadahq/nivada/internal/server/ui"
	"github.com/nivadahq/nivada/pkg/extract"
)

// Server holds the HTTP interface and the extraction pipeline.
type Server struct {
	cfg      *Config
	caps     *extract.Capabilities
	pipeline *extract.Pipeline

	httpServer *http.Server
}

// NewServer wires the server to an already-resolved capability registry.
// Capabilities are resolved once in main, not here, so tests can inject
// stub providers.
func NewServer(cfg *Config, caps *extract.Capabilities) *Server {
	if cfg == nil {
		cfg = &Config{}
		cfg.applyDefaults()
	}
	pipeline := extract.NewPipeline(caps, cfg.Policy())
	pipeline.SetScale(cfg.OCR.Scale)

	s := &Server{
		cfg:      cfg,
		caps:     caps,
		pipeline: pipeline,
	}
	s.httpServer = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the full middleware-wrapped route table. Exposed so
// tests can drive the server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/extract", s.handleExtract)
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/order", s.handleOrder)
	mux.HandleFunc("POST /v1/report", s.handleReport)
	mux.HandleFunc("GET /v1/capabilities", s.handleCapabilities)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", ui.GetHandler())

	// Chain middlewares: Recovery -> Logging -> Mux
	// Order matters! Recovery must be outer-most to catch everything.
	var handler http.Handler = mux
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	// healthz bypasses logging so liveness probes do not flood the log.
	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("/", handler)
	return rootMux
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() {
	log.Println("Starting graceful shutdown of HTTP Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}

// requestContext applies the configured intake deadline to one request.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), time.Duration(s.cfg.RequestTimeoutSec)*time.Second)
}
