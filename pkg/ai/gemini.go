package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Models tried in order of preference when binding a Gemini client.
var geminiModelPriority = []string{
	"gemini-2.5-flash-lite",
	"gemini-2.5-flash",
	"gemini-1.5-flash",
	"gemini-1.0-flash",
}

// GeminiClient implements TextClient against the Google generative language API.
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient binds the first available model from the preference list.
// Model selection happens once, here; callers never branch on the bound model.
func NewGeminiClient(apiKey string) *GeminiClient {
	c := &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	c.model = c.resolveModel()
	log.Printf("[AI] Gemini client bound to model %s", c.model)
	return c
}

func (c *GeminiClient) Model() string {
	return c.model
}

// resolveModel lists the models available to this API key and picks the first
// one from the preference order. When listing fails the top preference is
// assumed; a wrong guess surfaces later as a request failure.
func (c *GeminiClient) resolveModel() string {
	available, err := c.listModels()
	if err != nil {
		log.Printf("[AI] Could not list Gemini models: %v, assuming %s", err, geminiModelPriority[0])
		return geminiModelPriority[0]
	}

	for _, want := range geminiModelPriority {
		for _, got := range available {
			if got == want {
				return want
			}
		}
	}

	// None of the preferred models is available; take whatever the account has.
	if len(available) > 0 {
		log.Printf("[AI] No preferred Gemini model available, using %s", available[0])
		return available[0]
	}
	return geminiModelPriority[0]
}

func (c *GeminiClient) listModels() ([]string, error) {
	url := fmt.Sprintf("%s/models?key=%s", geminiBaseURL, c.apiKey)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini list models error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		// API returns fully qualified names like "models/gemini-2.5-flash"
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate implements TextClient.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnavailable
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBaseURL, c.model, c.apiKey)

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			MaxOutputTokens: opts.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini API error (%d): %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", ErrRequestFailed, err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no text returned", ErrRequestFailed)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
