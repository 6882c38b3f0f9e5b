// Package server exposes the time log parser over HTTP: an upload form for
// browsers and a JSON endpoint for programs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ccollicutt/timelog/pkg/config"
	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
	"github.com/ccollicutt/timelog/pkg/webhook"
)

// Options configures a Server. Everything the handlers need is passed here;
// the package keeps no global state.
type Options struct {
	Addr              string
	UploadDir         string
	AllowedExtensions []string
	MaxUploadBytes    int64
	SaveUploads       bool
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration

	FlushPolicy parser.FlushPolicy
	MedianMode  stats.MedianMode
	Webhooks    []config.WebhookConfig
}

// OptionsFromConfig derives server options from a validated configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.Server.Addr,
		UploadDir:         cfg.Server.UploadDir,
		AllowedExtensions: cfg.Server.AllowedExtensions,
		MaxUploadBytes:    cfg.Server.MaxUploadBytes,
		SaveUploads:       cfg.Server.SaveUploads,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		FlushPolicy:       cfg.Parser.ParsedFlushPolicy(),
		MedianMode:        cfg.Parser.ParsedMedian(),
		Webhooks:          cfg.Webhooks,
	}
}

// Server handles HTTP requests for time log parsing.
type Server struct {
	opts     Options
	parser   *parser.Parser
	webhooks *webhook.Client
	log      zerolog.Logger
}

// New creates a new Server.
func New(opts Options, log zerolog.Logger) *Server {
	return &Server{
		opts:     opts,
		parser:   parser.New(parser.WithFlushPolicy(opts.FlushPolicy)),
		webhooks: webhook.NewClient(),
		log:      log,
	}
}

// Handler returns the server's routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.uploadForm)
	mux.HandleFunc("POST /{$}", s.upload)
	mux.HandleFunc("POST /parse_timelog", s.parseTimelog)
	mux.HandleFunc("GET /health", s.health)

	return s.withRequestLog(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.opts.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

type ctxKey struct{}

// logger returns the request-scoped logger stored by withRequestLog.
func (s *Server) logger(r *http.Request) zerolog.Logger {
	if l, ok := r.Context().Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return s.log
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags each request with an id and logs its outcome.
func (s *Server) withRequestLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		log := s.log.With().Str("request_id", id).Logger()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, log)))

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
