// Package server exposes the classification core over HTTP. Routing uses
// chi; handlers are thin adapters that translate between JSON payloads and
// the orchestrator's API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/config"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

// Classifier is the slice of the orchestrator the handlers need.
type Classifier interface {
	Classify(ctx context.Context, text, conversationContext string) (*models.IntentResult, error)
	ClearCache(ctx context.Context) error
	Ping(ctx context.Context) error
}

type Server struct {
	httpServer   *http.Server
	router       chi.Router
	classifier   Classifier
	logger       logger.Logger
	maxBatchSize int
}

func New(cfg config.ServerConfig, classifier Classifier, log logger.Logger) *Server {
	s := &Server{
		classifier:   classifier,
		logger:       log.With(map[string]interface{}{"component": "http"}),
		maxBatchSize: cfg.MaxBatchSize,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.RequestTimeout) * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/intent", s.handleClassify)
		r.Post("/intent/batch", s.handleClassifyBatch)
		r.Post("/cache/clear", s.handleCacheClear)
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routing tree, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
