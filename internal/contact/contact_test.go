package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, form *Form) {
	t.Helper()
	values := map[string]string{
		"name":        "Ravi Teja",
		"email":       "ravi@example.org",
		"company":     "Deccan Tea Co.",
		"projectType": "commercial",
		"budget":      "10k-25k",
		"message":     "A 30s spot for our monsoon launch.",
	}
	for name, value := range values {
		require.NoError(t, form.UpdateField(name, value))
	}
}

func TestUpdateFieldTouchesOneField(t *testing.T) {
	form := NewForm(nil, 0)
	require.NoError(t, form.UpdateField("name", "Asha"))
	require.NoError(t, form.UpdateField("email", "asha@example.org"))
	require.NoError(t, form.UpdateField("name", "Asha K"))

	snap := form.Snapshot()
	assert.Equal(t, "Asha K", snap.Value(FieldName))
	assert.Equal(t, "asha@example.org", snap.Value(FieldEmail))
	assert.Equal(t, "", snap.Value(FieldTimeline))

	assert.ErrorIs(t, form.UpdateField("phone", "123"), ErrUnknownField)
}

func TestSubmitSuccessClearsAndResets(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	form := NewForm(NewHTTPSubmitter(server.URL, time.Second), 50*time.Millisecond)
	defer form.Close()
	fill(t, form)

	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, map[string]string{
		"name":        "Ravi Teja",
		"email":       "ravi@example.org",
		"company":     "Deccan Tea Co.",
		"projectType": "commercial",
		"budget":      "10k-25k",
		"timeline":    "",
		"message":     "A 30s spot for our monsoon launch.",
	}, received)

	snap := form.Snapshot()
	assert.True(t, snap.Submitted)
	assert.False(t, snap.Submitting)
	for _, f := range Fields {
		assert.Equal(t, "", snap.Value(f), "field %s", f)
	}

	require.Eventually(t, func() bool {
		return !form.Snapshot().Submitted
	}, time.Second, 5*time.Millisecond)
}

func TestSubmitNetworkFailureKeepsValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	form := NewForm(NewHTTPSubmitter(endpoint, time.Second), 0)
	fill(t, form)

	err := form.Submit(context.Background())
	require.ErrorIs(t, err, ErrNetwork)

	snap := form.Snapshot()
	assert.False(t, snap.Submitting)
	assert.False(t, snap.Submitted)
	assert.Equal(t, "Ravi Teja", snap.Value(FieldName))
	assert.Equal(t, "A 30s spot for our monsoon launch.", snap.Value(FieldMessage))
	assert.Equal(t, ErrNetwork.Error(), snap.Error)
}

func TestSubmitRejectedSurfacesMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "json error", body: `{"error":"Email domain not allowed"}`, expected: "Email domain not allowed"},
		{name: "json message", body: `{"message":"Quota exceeded"}`, expected: "Quota exceeded"},
		{name: "nested error", body: `{"error":{"message":"Form disabled"}}`, expected: "Form disabled"},
		{name: "plain text", body: "  try later  ", expected: "try later"},
		{name: "empty body", body: "", expected: ErrNetwork.Error()},
		{name: "html page", body: "<html>oops</html>", expected: ErrNetwork.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			form := NewForm(NewHTTPSubmitter(server.URL, time.Second), 0)
			fill(t, form)

			err := form.Submit(context.Background())
			var submitErr *SubmitError
			require.ErrorAs(t, err, &submitErr)
			assert.Equal(t, http.StatusUnprocessableEntity, submitErr.Status)
			assert.Equal(t, tt.expected, form.Snapshot().Error)
			assert.Equal(t, "Ravi Teja", form.Snapshot().Value(FieldName))
		})
	}
}

func TestErrorMessageTruncatesOnRuneBoundary(t *testing.T) {
	body := "a" + strings.Repeat("अ", 100)
	require.Greater(t, len(body), maxMessageBytes)

	msg := errorMessage([]byte(body))
	assert.True(t, utf8.ValidString(msg))
	assert.LessOrEqual(t, len(msg), maxMessageBytes)
	assert.Equal(t, "a"+strings.Repeat("अ", 99), msg)

	ascii := strings.Repeat("x", 400)
	assert.Len(t, errorMessage([]byte(ascii)), maxMessageBytes)
}

func TestSubmitMissingEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "YOUR_FORMSPREE_ENDPOINT", "https://formspree.io/f/<id>", "ftp://files"} {
		t.Run(endpoint, func(t *testing.T) {
			form := NewForm(NewHTTPSubmitter(endpoint, time.Second), 0)
			fill(t, form)

			err := form.Submit(context.Background())
			require.ErrorIs(t, err, ErrEndpointNotConfigured)
			snap := form.Snapshot()
			assert.False(t, snap.Submitting)
			assert.Equal(t, "Ravi Teja", snap.Value(FieldName))
		})
	}

	form := NewForm(nil, 0)
	fill(t, form)
	assert.ErrorIs(t, form.Submit(context.Background()), ErrEndpointNotConfigured)
}

func TestSubmitRequiresFields(t *testing.T) {
	called := false
	form := NewForm(submitterFunc(func(context.Context, Payload) error {
		called = true
		return nil
	}), 0)
	require.NoError(t, form.UpdateField("name", "Asha"))
	require.NoError(t, form.UpdateField("message", "   "))

	err := form.Submit(context.Background())
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []Field{FieldEmail, FieldProjectType, FieldMessage}, missing.Fields)
	assert.False(t, called)
}

type submitterFunc func(context.Context, Payload) error

func (f submitterFunc) Submit(ctx context.Context, p Payload) error { return f(ctx, p) }

func TestSubmitAtMostOneInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	form := NewForm(submitterFunc(func(context.Context, Payload) error {
		close(started)
		<-release
		return nil
	}), time.Hour)
	defer form.Close()
	fill(t, form)

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background()) }()
	<-started

	assert.True(t, form.Snapshot().Submitting)
	assert.ErrorIs(t, form.Submit(context.Background()), ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, form.Snapshot().Submitting)
	assert.True(t, form.Snapshot().Submitted)
}

func TestCloseCancelsReset(t *testing.T) {
	form := NewForm(submitterFunc(func(context.Context, Payload) error { return nil }), 20*time.Millisecond)
	fill(t, form)
	require.NoError(t, form.Submit(context.Background()))

	form.Close()
	time.Sleep(60 * time.Millisecond)
	assert.True(t, form.Snapshot().Submitted, "reset timer was cancelled")
}
