package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leemount96/hearing-prep/internal/config"
	"github.com/leemount96/hearing-prep/internal/llm"
)

func TestResolveConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider":"gemini","timeout_seconds":30}`), 0644))

	t.Setenv("DATABASE_URL", "postgres://env-host/prep")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := resolveConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, "postgres://env-host/prep", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestResolveConfig_MissingFile(t *testing.T) {
	_, err := resolveConfig("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL: "postgres://file-host/prep",
		Provider:    "gemini",
	}

	applyOverrides(cfg, "postgres://flag-host/prep", "flag-key", "", "gemini-2.5-pro")

	assert.Equal(t, "postgres://flag-host/prep", cfg.DatabaseURL)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, "gemini", cfg.Provider, "empty flag should not clear the provider")
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestLLMConfig_ProviderSelection(t *testing.T) {
	geminiCfg := llmConfig(&config.Config{Provider: "gemini"})
	assert.Equal(t, llm.ProviderGemini, geminiCfg.Provider)

	responsesCfg := llmConfig(&config.Config{Provider: "responses", ModelBaseURL: "https://models.example.com"})
	assert.Equal(t, llm.ProviderResponses, responsesCfg.Provider)
	assert.Equal(t, "https://models.example.com", responsesCfg.BaseURL)
}

func TestLLMConfig_ModelOverride(t *testing.T) {
	cfg := llmConfig(&config.Config{Provider: "gemini", Model: "gemini-exp"})
	assert.Equal(t, "gemini-exp", cfg.GetModel(llm.TierAdvanced))
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"http 429", errors.New("model request failed with status 429"), true},
		{"quota message", errors.New("googleapi: Error 429: Quota exceeded"), true},
		{"resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = quota"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRateLimited(tt.err))
		})
	}
}
