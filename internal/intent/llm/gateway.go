// Package llm is the transport boundary to the chat-completion endpoint.
// It returns the model's raw reply text or a typed failure and performs no
// interpretation of the reply body.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/config"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/metrics"
)

var (
	// ErrTimeout reports that the configured request deadline elapsed.
	ErrTimeout = errors.New("LLM_TIMEOUT")
	// ErrConnection reports a transport-level failure before a status code
	// was received, including an unreadable response envelope.
	ErrConnection = errors.New("LLM_CONNECTION_FAILED")
)

// HTTPError is a non-2xx response from the endpoint.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("LLM_HTTP_ERROR: status %d", e.Status)
}

// Gateway performs chat-completion calls against an OpenAI-compatible API.
// A single attempt per request; retry policy belongs to infrastructure, not
// the classification core.
type Gateway struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	client      *http.Client
	logger      logger.Logger
}

func NewGateway(cfg config.LLMConfig, log logger.Logger) *Gateway {
	return &Gateway{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.GetTimeout(),
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: log.With(map[string]interface{}{
			"component": "llm-gateway",
			"model":     cfg.Model,
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the composed prompt and returns the model's raw reply text.
// The caller's ctx can cancel the call early; either way the failure is one
// of ErrTimeout, ErrConnection, or *HTTPError.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload := chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrConnection, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrConnection, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	metrics.LLMRequestDuration.Observe(time.Since(start).Seconds())

	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || isTimeout(err) {
		metrics.LLMRequests.WithLabelValues("timeout").Inc()
		g.logger.Warn("completion call timed out", map[string]interface{}{
			"elapsedMs": time.Since(start).Milliseconds(),
		})
		return "", ErrTimeout
	}
	if err != nil {
		metrics.LLMRequests.WithLabelValues("connection_error").Inc()
		g.logger.Warn("completion call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		metrics.LLMRequests.WithLabelValues("http_error").Inc()
		g.logger.Warn("completion call returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return "", &HTTPError{Status: resp.StatusCode}
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.LLMRequests.WithLabelValues("connection_error").Inc()
		return "", fmt.Errorf("%w: decode response: %v", ErrConnection, err)
	}
	if len(envelope.Choices) == 0 {
		metrics.LLMRequests.WithLabelValues("connection_error").Inc()
		return "", fmt.Errorf("%w: response has no choices", ErrConnection)
	}

	metrics.LLMRequests.WithLabelValues("ok").Inc()
	return envelope.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// Ping probes the endpoint's model listing, used by the readiness hook.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrConnection, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}
