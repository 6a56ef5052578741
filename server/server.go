// Package server exposes the latest published frame of a running simulation
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/TFMV/hypergraph/metrics"
	"github.com/TFMV/hypergraph/render"
)

// Config for the server
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	NoiseIntensity  float64
	ShowLabels      bool
}

// Server serves snapshots of the most recently published frame. Publish may
// be called from the simulation goroutine while handlers run concurrently.
type Server struct {
	config  Config
	frame   atomic.Pointer[render.Frame]
	metrics *metrics.Registry
	logger  *slog.Logger
	started time.Time
}

// New creates a server. A nil registry disables /metrics.
func New(config Config, reg *metrics.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	return &Server{
		config:  config,
		metrics: reg,
		logger:  logger,
		started: time.Now(),
	}
}

// Publish makes f the frame served by subsequent requests.
func (s *Server) Publish(f *render.Frame) {
	s.frame.Store(f)
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot(""))
	mux.HandleFunc("GET /snapshot.svg", s.handleSnapshot("svg"))
	mux.HandleFunc("GET /snapshot.json", s.handleSnapshot("json"))
	mux.HandleFunc("GET /snapshot.txt", s.handleSnapshot("ascii"))
	mux.HandleFunc("GET /snapshot.dot", s.handleSnapshot("dot"))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return s.instrument(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handleIndex lists the available endpoints
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>hypergraph</title>
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; background: #111; color: #ddd; margin: 20px; }
    a { color: #ffd54f; }
    img { display: block; margin-top: 20px; }
  </style>
</head>
<body>
  <h1>hypergraph</h1>
  <ul>
    <li><a href="/snapshot.svg">/snapshot.svg</a></li>
    <li><a href="/snapshot.json">/snapshot.json</a></li>
    <li><a href="/snapshot.txt">/snapshot.txt</a></li>
    <li><a href="/snapshot.dot">/snapshot.dot</a></li>
    <li><a href="/metrics">/metrics</a></li>
    <li><a href="/healthz">/healthz</a></li>
  </ul>
  <img src="/snapshot.svg" width="600" height="600">
</body>
</html>
`)
}

// handleSnapshot renders the current frame. An empty format is taken from
// the format query parameter, defaulting to svg.
func (s *Server) handleSnapshot(fixed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := s.frame.Load()
		if f == nil {
			http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
			return
		}

		format := fixed
		if format == "" {
			format = r.URL.Query().Get("format")
		}
		if format == "" {
			format = "svg"
		}

		renderer, err := render.GetRenderer(format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		options := render.NewDefaultOptions(format)
		options.NoiseIntensity = s.config.NoiseIntensity
		options.ShowLabels = s.config.ShowLabels
		if v, err := strconv.Atoi(r.URL.Query().Get("width")); err == nil && v > 0 {
			options.Width = float64(v)
		}
		if v, err := strconv.Atoi(r.URL.Query().Get("height")); err == nil && v > 0 {
			options.Height = float64(v)
		}

		output, err := renderer.Render(f, options)
		if err != nil {
			s.logger.Error("rendering snapshot", slog.String("format", format), slog.Any("error", err))
			http.Error(w, "Error generating visualization: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType(format))
		w.Write(output)
	}
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "json":
		return "application/json"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	tick := 0
	if f := s.frame.Load(); f != nil {
		tick = f.Tick
	} else {
		status = "starting"
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":%q,"tick":%d,"uptime_seconds":%.0f}`+"\n", status, tick, time.Since(s.started).Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records every request into the metrics registry.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if s.metrics != nil {
			// the matched pattern keeps label cardinality bounded
			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			s.metrics.RecordHTTPRequest(r.Method, path, strconv.Itoa(rec.status), time.Since(start))
		}
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
