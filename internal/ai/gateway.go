package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/TejasKabotula/youtube-genai-learning/internal/config"
)

const (
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	xaiEndpoint  = "https://api.x.ai/v1/chat/completions"

	groqDefaultModel = "llama-3.3-70b-versatile"
	xaiDefaultModel  = "grok-beta"

	requestTimeout = 60 * time.Second

	systemPrompt = "You are a helpful AI tutor. You MUST return valid JSON objects only. Do not include markdown tags like ```json in your response."
)

// Gateway is the single choke point for outbound model calls. Provider and
// model are resolved once at construction from the shape of the configured
// key; the value is read-only afterwards, so concurrent callers need no
// locking.
type Gateway struct {
	apiKey     string
	provider   string
	endpoint   string
	model      string
	forceAPI   bool
	httpClient *http.Client
}

func NewGateway(cfg config.Config) *Gateway {
	// Groq keys start with gsk_; everything else is treated as xAI.
	isGroq := strings.HasPrefix(cfg.APIKey, "gsk_")

	endpoint := xaiEndpoint
	provider := "xAI"
	defaultModel := xaiDefaultModel
	if isGroq {
		endpoint = groqEndpoint
		provider = "Groq"
		defaultModel = groqDefaultModel
	}

	// Ignore a model override that clearly belongs to the other provider.
	model := cfg.ModelOverride
	if model == "" ||
		(model == xaiDefaultModel && isGroq) ||
		(strings.Contains(model, "llama") && !isGroq) {
		model = defaultModel
	}

	return &Gateway{
		apiKey:     cfg.APIKey,
		provider:   provider,
		endpoint:   endpoint,
		model:      model,
		forceAPI:   cfg.ForceAPI,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Provider reports the vendor selected at construction.
func (g *Gateway) Provider() string {
	return g.provider
}

// Model reports the model identifier used for live calls.
func (g *Gateway) Model() string {
	return g.model
}

// mockTriggered reports whether the configured key is absent or a known
// placeholder left over from an example .env.
func (g *Gateway) mockTriggered() bool {
	key := strings.TrimSpace(g.apiKey)
	return key == "" ||
		key == "your_llm_api_key" ||
		key == "your_grok_api_key" ||
		strings.Contains(key, "your_")
}

// Call sends one prompt to the selected provider and returns the model's
// text payload with any markdown fences stripped. Without a usable key it
// serves deterministic mock content unless FORCE_API is set, in which case
// it fails with ErrConfig. Live-call failures fall back to mock content
// too, except rate limits, which always surface as ErrRateLimit.
func (g *Gateway) Call(ctx context.Context, prompt string) (string, error) {
	if g.mockTriggered() {
		if g.forceAPI {
			return "", fmt.Errorf("%w: FORCE_API is set but GROK_API_KEY is missing or a placeholder", ErrConfig)
		}
		log.Printf("--- AI MOCK MODE ACTIVE (no valid %s key) ---", g.provider)
		return mockContent(prompt), nil
	}

	text, err := g.callLive(ctx, prompt)
	if err == nil {
		return StripFences(text), nil
	}

	// Rate limits are never masked: the caller has to slow down.
	if errors.Is(err, ErrRateLimit) {
		return "", err
	}

	if g.forceAPI {
		return "", err
	}

	log.Printf("--- AI ERROR: falling back to mock mode: %v ---", err)
	return mockContent(prompt), nil
}

func (g *Gateway) callLive(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0,
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUpstream, err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, buf)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	log.Printf("--- AI CALL: provider=%s model=%s ---", g.provider, g.model)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", g.classifyAPIError(resp)
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	// Never let a missing envelope field turn into a silent empty string.
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: unexpected response structure from %s", ErrUpstream, g.provider)
	}

	return response.Choices[0].Message.Content, nil
}

func (g *Gateway) classifyAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	detail := string(body)
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		detail = apiErr.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimit, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, detail)
	}
}
