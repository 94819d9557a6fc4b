package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/forPelevin/prclips/internal/config"
	"github.com/forPelevin/prclips/internal/logging"
	"github.com/forPelevin/prclips/internal/usecase"
)

const DefaultMaxUploadBytes = 256 << 20

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type ServerConfig struct {
	Addr           string
	Extract        config.ExtractConfig
	MaxUploadBytes int64
	Logger         *slog.Logger
	StartTime      time.Time

	// gate admits one extraction at a time.
	gate *sync.Mutex
}

func NewServer(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func newUsecase(logger *slog.Logger) usecase.Usecase {
	return usecase.New(usecase.Deps{Logger: logging.WithComponent(logger, "extract")})
}
