package copywriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"Rain on neon."}`))
	}))
	defer srv.Close()

	text, err := NewOllama(srv.URL+"/").Generate(context.Background(), Request{Model: "llama3", System: "sys", Prompt: "p", Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "Rain on neon.", text)
	assert.Equal(t, "llama3", got["model"])
	assert.Equal(t, "sys", got["system"])
	assert.Equal(t, false, got["stream"])
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var body struct {
			Messages []map[string]string `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Messages, 2)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Golden hour."}}]}`))
	}))
	defer srv.Close()

	text, err := NewOpenAI("secret", srv.URL).Generate(context.Background(), Request{Model: "gpt", System: "sys", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Golden hour.", text)

	_, err = NewOpenAI("", srv.URL).Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name string
		want interface{}
	}{
		{"", &Gemini{}},
		{"Gemini", &Gemini{}},
		{"ollama", &Ollama{}},
		{"openai", &OpenAI{}},
	}
	for _, tt := range tests {
		p, err := NewProvider(tt.name, Keys{})
		require.NoError(t, err)
		assert.IsType(t, tt.want, p)
	}

	_, err := NewProvider("claude", Keys{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
