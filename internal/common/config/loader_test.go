package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stevehamwu/BeverageIntentRecognition/internal/common/errors"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg, "development")

	assert.Equal(t, "beverage-intent", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxBatchSize)
	assert.Equal(t, "Qwen3-8B", cfg.LLM.Model)
	assert.Equal(t, "EMPTY", cfg.LLM.APIKey)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.LLM.GetTimeout())
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.GetTTL())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Model = "Qwen2.5-14B"
	cfg.LLM.Timeout = 10
	cfg.Cache.Backend = "redis"

	applyDefaults(cfg, "production")

	assert.Equal(t, "Qwen2.5-14B", cfg.LLM.Model)
	assert.Equal(t, 10*time.Second, cfg.LLM.GetTimeout())
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{}
	applyDefaults(valid, "development")
	valid.LLM.BaseURL = "http://localhost:8000/v1"
	require.NoError(t, validateConfig(valid))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.LLM.BaseURL = "" }},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.LLM.Temperature = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg, "development")
			cfg.LLM.BaseURL = "http://localhost:8000/v1"
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, apperrors.ErrCodeConfigInvalid, stdErr.Code)
		})
	}
}
