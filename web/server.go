package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/poiesic/wellwise/dialogue"
	"github.com/poiesic/wellwise/session"
)

//go:embed static/chat.html
var static embed.FS

const (
	// MaxMessageLength caps the characters accepted in one chat message.
	MaxMessageLength = 2000

	// maxBodyBytes fits MaxMessageLength runes at their longest JSON
	// encoding, an escaped surrogate pair of 12 bytes, plus the envelope.
	maxBodyBytes = 12*MaxMessageLength + 1024

	shutdownTimeout = 5 * time.Second
)

// Handler runs one dialogue turn. *dialogue.Controller implements it.
type Handler interface {
	Handle(ctx context.Context, st session.State, input string) (session.State, *dialogue.Reply, error)
}

// Server exposes the dialogue as a JSON API plus a single chat page.
type Server struct {
	handler  Handler
	store    *session.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "web")
		return nil
	}
}

// NewServer creates a server answering turns with handler and keeping
// conversations in store.
func NewServer(handler Handler, store *session.Store, opts ...Option) (*Server, error) {
	if handler == nil {
		return nil, ErrHandlerRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Server{
		handler:  handler,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.Default().With("component", "web"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Routes returns the HTTP handler for the whole site.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/messages", s.handlePostMessage)
			r.Post("/reset", s.handleResetSession)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. A server stopped by ctx returns nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
