// Package server exposes the agent over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naveenaduri/resume-agent/internal/chat"
	"github.com/naveenaduri/resume-agent/internal/knowledge"
	"github.com/naveenaduri/resume-agent/internal/mailer"
	"github.com/naveenaduri/resume-agent/internal/resume"
	"github.com/naveenaduri/resume-agent/internal/skills"
	"go.uber.org/zap"
)

const defaultPort = 8080

// Config holds the server settings and the resume document identity.
type Config struct {
	Port       int
	ResumeText string
	ResumeFile string
}

// Deps aggregates the collaborators the handlers need. Mailer may be nil;
// the contact endpoint then reports mail as unconfigured.
type Deps struct {
	Session   *chat.Session
	Base      *knowledge.Base
	Segmenter *resume.Segmenter
	Extractor *skills.Extractor
	Mailer    *mailer.Mailer
	Logger    *zap.Logger
}

type Server struct {
	httpServer *http.Server
	cfg        Config
	deps       Deps
	logger     *zap.Logger
}

func New(cfg Config, deps Deps) *Server {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{cfg: cfg, deps: deps, logger: logger}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/extract-skills", s.handleExtractSkills)
	mux.HandleFunc("GET /api/skills", s.handleSkills)
	mux.HandleFunc("GET /api/experience", s.handleExperience)
	mux.HandleFunc("GET /api/resume-info", s.handleResumeInfo)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("POST /api/send-email", s.handleSendEmail)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Run serves until the context is canceled or a termination signal
// arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
