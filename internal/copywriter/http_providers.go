package copywriter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnknownProvider is returned by NewProvider for an unsupported name.
var ErrUnknownProvider = errors.New("unknown copywriter provider")

const (
	defaultOllamaURL = "http://localhost:11434"
	defaultOpenAIURL = "https://api.openai.com/v1"
)

// Ollama drafts copy with a local Ollama server.
type Ollama struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewOllama(baseURL string) *Ollama {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	return &Ollama{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: &http.Client{}}
}

func (o *Ollama) Generate(ctx context.Context, req Request) (string, error) {
	var response struct {
		Response string `json:"response"`
	}
	err := postJSON(ctx, o.HTTPClient, o.BaseURL+"/api/generate", "", map[string]interface{}{
		"model":  req.Model,
		"system": req.System,
		"prompt": req.Prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": req.Temperature,
		},
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Response, nil
}

// OpenAI drafts copy with the chat completions API.
type OpenAI struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewOpenAI(apiKey, baseURL string) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey, HTTPClient: &http.Client{}}
}

func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	if o.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	messages := []map[string]string{}
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	err := postJSON(ctx, o.HTTPClient, o.BaseURL+"/chat/completions", o.APIKey, map[string]interface{}{
		"model":       req.Model,
		"messages":    messages,
		"temperature": req.Temperature,
	}, &response)
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}
	return response.Choices[0].Message.Content, nil
}

func postJSON(ctx context.Context, client *http.Client, url, bearer string, body, out interface{}) error {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Keys holds the credentials and endpoints providers read from the
// environment.
type Keys struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIURL    string
	OllamaURL    string
}

// NewProvider returns the provider registered under name.
func NewProvider(name string, keys Keys) (Provider, error) {
	switch strings.ToLower(name) {
	case "", "gemini":
		return NewGemini(keys.GeminiAPIKey), nil
	case "ollama":
		return NewOllama(keys.OllamaURL), nil
	case "openai":
		return NewOpenAI(keys.OpenAIAPIKey, keys.OpenAIURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
