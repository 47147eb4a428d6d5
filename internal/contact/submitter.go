package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// ErrEndpointNotConfigured is returned before any request when the
	// submission endpoint is unset or still a placeholder.
	ErrEndpointNotConfigured = errors.New("contact endpoint is not configured")
	// ErrNetwork wraps transport failures.
	ErrNetwork = errors.New("network error, please try again")
)

// Payload is the flat key/value body sent to the endpoint. Every key is
// always present.
type Payload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
	Message     string `json:"message"`
}

// Submitter delivers a payload to the external form service.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// SubmitError is a non-success response from the endpoint.
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return e.Message
}

// HTTPSubmitter posts the payload as JSON to a configured URL.
type HTTPSubmitter struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewHTTPSubmitter creates a submitter with the given request timeout.
func NewHTTPSubmitter(endpoint string, timeout time.Duration) *HTTPSubmitter {
	return &HTTPSubmitter{
		Endpoint: strings.TrimSpace(endpoint),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the endpoint looks usable.
func (s *HTTPSubmitter) Configured() bool {
	return endpointConfigured(s.Endpoint)
}

func endpointConfigured(endpoint string) bool {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return false
	}
	upper := strings.ToUpper(endpoint)
	for _, marker := range []string{"YOUR_", "<", "CHANGEME", "EXAMPLE.COM"} {
		if strings.Contains(upper, marker) {
			return false
		}
	}
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}

func (s *HTTPSubmitter) Submit(ctx context.Context, payload Payload) error {
	if !s.Configured() {
		return ErrEndpointNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Warn("Contact submission failed", "endpoint", s.Endpoint, "err", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	message := errorMessage(respBody)
	if message == "" {
		message = ErrNetwork.Error()
	}
	slog.Warn("Contact submission rejected", "endpoint", s.Endpoint, "status", resp.StatusCode, "message", message)
	return &SubmitError{Status: resp.StatusCode, Message: message}
}

// maxMessageBytes caps a plain-text upstream message.
const maxMessageBytes = 300

// errorMessage extracts a human readable message from a response body:
// a JSON "error" or "message" field, otherwise the trimmed text.
func errorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var decoded struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		switch v := decoded.Error.(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
		if decoded.Message != "" {
			return decoded.Message
		}
		return ""
	}

	if strings.HasPrefix(trimmed, "<") {
		return ""
	}
	if len(trimmed) > maxMessageBytes {
		cut := maxMessageBytes
		for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
			cut--
		}
		trimmed = trimmed[:cut]
	}
	return trimmed
}
