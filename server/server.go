// Package server exposes the journal over HTTP for a browser UI: lists,
// forms, PDF downloads and a websocket that says when to refetch.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sporadisk/selfcare/client/supabase"
	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/pdfexport"
)

// Account is the signed-in user as seen by the API.
type Account interface {
	CurrentUser() (supabase.User, bool)
	Nickname(ctx context.Context) (string, error)
}

type Server struct {
	journal  *journal.Journal
	account  Account
	exporter pdfexport.Exporter
	logger   *slog.Logger
	hub      *Hub
	router   *chi.Mux
	unsubs   []func()
}

// New wires the routes. exporter supplies the time zone and clock for
// downloads; its Saver is replaced per request.
func New(logger *slog.Logger, j *journal.Journal, account Account, exporter pdfexport.Exporter) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		journal:  j,
		account:  account,
		exporter: exporter,
		logger:   logger,
		hub:      NewHub(logger),
	}

	if j.Bus != nil {
		for _, topic := range []journal.Topic{journal.TopicEntries, journal.TopicTimeline} {
			topic := topic
			s.unsubs = append(s.unsubs, j.Bus.Subscribe(topic, func() { s.hub.Refresh(topic) }))
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleWriteEntry)
		r.Get("/timeline", s.handleListTimeline)
		r.Post("/timeline", s.handleAddEvent)
		r.Get("/export/diary", s.handleExportDiary)
		r.Get("/export/timeline", s.handleExportTimeline)
		r.Handle("/events", s.hub)
	})

	s.router = r
	return s
}

// Handler serves the API. The refresh channel at /api/events answers 503
// until Start is called; ListenAndServe does that itself.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the refresh channel until ctx is done.
func (s *Server) Start(ctx context.Context) {
	s.hub.Start(ctx)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	defer s.close()

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	s.Start(hubCtx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("Stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}
