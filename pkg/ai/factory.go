package ai

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	GeminiAPIKey string

	OllamaBaseURL string // e.g. "http://localhost:11434"
	OllamaModel   string // e.g. "llama3", "mistral"
}

// NewTextClient creates a TextClient based on the config.
// This is the factory function - switch AI provider by changing config.Provider.
// ErrUnavailable is returned when nothing is configured; that is an expected
// state and the caller keeps running with deterministic fallbacks.
func NewTextClient(cfg Config) (TextClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, ErrUnavailable
		}
		return NewGeminiClient(cfg.GeminiAPIKey), nil

	case ProviderOllama:
		if cfg.OllamaBaseURL == "" {
			return nil, ErrUnavailable
		}
		return NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		// Auto: prefer Gemini when a key is present, otherwise Ollama.
		if cfg.GeminiAPIKey != "" {
			return NewGeminiClient(cfg.GeminiAPIKey), nil
		}
		if cfg.OllamaBaseURL != "" {
			return NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel), nil
		}
		return nil, ErrUnavailable
	}
}
