package ai

import (
	"context"
	"errors"
)

// Sentinel errors for the AI backend. Callers branch on these with errors.Is
// and pick a deterministic fallback instead of surfacing them.
var (
	// ErrUnavailable means no backend credential or model is configured.
	// This is an expected state, not a startup failure.
	ErrUnavailable = errors.New("ai: no provider configured")

	// ErrRequestFailed means the backend call errored, timed out or
	// returned a response that could not be read.
	ErrRequestFailed = errors.New("ai: request failed")
)

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// TextClient is the interface for generative text providers.
// Implement this interface to add new providers (Gemini, Ollama, OpenAI, etc.)
type TextClient interface {
	// Generate sends a rendered prompt and returns the raw model text.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Model reports the bound backend model identifier, for observability.
	Model() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
