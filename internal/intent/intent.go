// Package intent orchestrates a classification request through its stages:
// cache lookup, prompt assembly, LLM completion, reply interpretation, and
// the rule-based fallback when the LLM leg fails. Every accepted input
// resolves to a result; only invalid input surfaces an error to the caller.
package intent

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/stevehamwu/BeverageIntentRecognition/internal/common/errors"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/metrics"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/observability"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/cache"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/extract"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/fallback"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/interpret"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/prompt"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

// Paths a request can resolve through, used as the metric label.
const (
	pathCache    = "cache"
	pathLLM      = "llm"
	pathFallback = "fallback"
)

// CompletionClient is the LLM transport the orchestrator depends on.
// *llm.Gateway satisfies it; tests substitute fakes.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
}

// Service is the classification entry point. All fields are set once at
// construction; Classify is safe for concurrent use.
type Service struct {
	prompts     *prompt.Builder
	llm         CompletionClient
	interpreter *interpret.Interpreter
	classifier  *fallback.Classifier
	extractor   *extract.Extractor
	store       cache.Cache
	ttl         time.Duration
	logger      logger.Logger
	obs         *observability.Observability
}

func NewService(client CompletionClient, store cache.Cache, ttl time.Duration, log logger.Logger, obs *observability.Observability) (*Service, error) {
	builder, err := prompt.NewBuilder()
	if err != nil {
		return nil, err
	}
	extractor := extract.New()
	interpreter, err := interpret.New(extractor, log)
	if err != nil {
		return nil, err
	}
	return &Service{
		prompts:     builder,
		llm:         client,
		interpreter: interpreter,
		classifier:  fallback.New(),
		extractor:   extractor,
		store:       store,
		ttl:         ttl,
		logger:      log.With(map[string]interface{}{"component": "orchestrator"}),
		obs:         obs,
	}, nil
}

// Classify resolves one utterance to an intent. conversationContext is
// optional prior-dialog text that shapes the prompt and the cache key.
// The only error callers see is invalid input; LLM and interpretation
// failures are recovered through the fallback classifier.
func (s *Service) Classify(ctx context.Context, text, conversationContext string) (*models.IntentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewInvalidInputError("input text is empty")
	}

	requestID := uuid.NewString()
	log := s.logger.With(map[string]interface{}{"requestId": requestID})
	start := time.Now()

	key := cache.Key(text, conversationContext)
	if cached, hit, err := s.store.Get(ctx, key); err != nil {
		log.WithError(err).Warn("cache lookup failed, proceeding without cache", nil)
	} else if hit {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		s.finish(ctx, log, pathCache, cached, start)
		return cached, nil
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	result, path := s.classify(ctx, log, text, conversationContext)

	if err := s.store.Put(ctx, key, result, s.ttl); err != nil {
		log.WithError(err).Warn("cache store failed", nil)
	}

	s.finish(ctx, log, path, result, start)
	return result, nil
}

// classify runs the LLM leg and falls back on any failure along it.
func (s *Service) classify(ctx context.Context, log logger.Logger, text, conversationContext string) (*models.IntentResult, string) {
	composed := s.prompts.Build(text, conversationContext)

	raw, err := s.llm.Complete(ctx, composed)
	if err != nil {
		log.WithError(err).Warn("completion failed, using fallback", nil)
		return s.fallbackResult(text), pathFallback
	}

	result, err := s.interpreter.Interpret(raw)
	if err != nil {
		log.WithError(err).Warn("reply interpretation failed, using fallback", nil)
		return s.fallbackResult(text), pathFallback
	}

	// Backfill slots the model omitted from the utterance itself. Where
	// both sides produced a value, the model's (already normalized) value
	// stands.
	for key, value := range s.extractor.Extract(text) {
		if _, exists := result.Entities[key]; !exists {
			result.Entities[key] = value
		}
	}
	return result, pathLLM
}

func (s *Service) fallbackResult(text string) *models.IntentResult {
	intent, confidence := s.classifier.Classify(text)
	return &models.IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Entities:   s.extractor.Extract(text),
	}
}

func (s *Service) finish(ctx context.Context, log logger.Logger, path string, result *models.IntentResult, start time.Time) {
	elapsed := time.Since(start)
	metrics.ClassificationsTotal.WithLabelValues(path, string(result.Intent)).Inc()
	metrics.ClassificationDuration.WithLabelValues(path).Observe(elapsed.Seconds())
	if s.obs != nil {
		s.obs.RecordClassification(ctx, path)
		s.obs.RecordDuration(ctx, elapsed, path)
	}
	log.Info("classification resolved", map[string]interface{}{
		"path":       path,
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"elapsedMs":  elapsed.Milliseconds(),
	})
}

// ClearCache drops every stored result.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Ping probes the LLM endpoint; a failure means requests will resolve
// through the fallback path, not that the service is down.
func (s *Service) Ping(ctx context.Context) error {
	return s.llm.Ping(ctx)
}
