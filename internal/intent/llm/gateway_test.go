package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/config"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
)

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		BaseURL:     baseURL,
		APIKey:      "EMPTY",
		Model:       "Qwen3-8B",
		Temperature: 0.1,
		MaxTokens:   300,
		Timeout:     5,
	}
}

func completionBody(content string) string {
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestComplete_Success(t *testing.T) {
	const reply = `{"intent": "grab_drink", "confidence": 0.9, "entities": {}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer EMPTY", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "Qwen3-8B", reqBody["model"])
		assert.InDelta(t, 0.1, reqBody["temperature"], 1e-9)
		assert.EqualValues(t, 300, reqBody["max_tokens"])
		assert.Equal(t, false, reqBody["stream"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 1)
		first := messages[0].(map[string]interface{})
		assert.Equal(t, "user", first["role"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(reply)))
	}))
	defer server.Close()

	gateway := NewGateway(testConfig(server.URL), logger.NewTestLogger(t))

	content, err := gateway.Complete(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, reply, content)
}

func TestComplete_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := NewGateway(testConfig(server.URL), logger.NewTestLogger(t))

	_, err := gateway.Complete(context.Background(), "prompt")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
}

func TestComplete_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	gateway := NewGateway(testConfig(server.URL), logger.NewTestLogger(t))

	_, err := gateway.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestComplete_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	cfg := testConfig(server.URL)
	cfg.Timeout = 1
	gateway := NewGateway(cfg, logger.NewTestLogger(t))

	start := time.Now()
	_, err := gateway.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestComplete_CallerCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	gateway := NewGateway(testConfig(server.URL), logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// The caller abandons the call without waiting for the server.
	start := time.Now()
	_, err := gateway.Complete(ctx, "prompt")
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	gateway := NewGateway(testConfig(server.URL), logger.NewTestLogger(t))

	_, err := gateway.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	gateway := NewGateway(testConfig(server.URL), logger.NewTestLogger(t))
	assert.NoError(t, gateway.Ping(context.Background()))

	server.Close()
	err := gateway.Ping(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
}
