// Package api serves the operations HTTP surface: health, metrics, vote
// tallies and ban management.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/TendTo/MemeBot/src/actions/core"
	sharedconfig "github.com/TendTo/MemeBot/src/config"
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var _ core.Module = (*Server)(nil)

// Backend is the moderation core as seen by the API.
type Backend interface {
	Tally(ctx context.Context, card meme.CardRef, d meme.Decision) (int64, error)
	PendingCount(ctx context.Context) (int64, error)
	Ban(ctx context.Context, userID int64) error
	Unban(ctx context.Context, userID int64) (bool, error)
}

type Server struct {
	cfg           sharedconfig.APIConfig
	backend       Backend
	reviewChannel int64
	engine        *gin.Engine
	srv           *http.Server
	log           *zap.Logger
}

// New builds the server. reviewChannel tells review cards from public ones
// when reporting tallies.
func New(cfg sharedconfig.APIConfig, backend Backend, reviewChannel int64, log *zap.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("api: jwt secret is required")
	}
	s := &Server{
		cfg:           cfg,
		backend:       backend,
		reviewChannel: reviewChannel,
		log:           logging.Resolve(log, "api"),
	}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.accessLog())
	attachRoutes(s.engine, s)
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Name() string { return "api" }

func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("api: listen %s: %w", s.cfg.Addr, err)
	}
	s.srv = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", zap.Error(err))
		}
	}()
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))
	return nil
}

func (s *Server) Stop(ctx context.Context) {
	if s.srv == nil {
		return
	}
	shutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutCtx); err != nil {
		s.log.Warn("shutdown", zap.Error(err))
	}
	s.srv = nil
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
