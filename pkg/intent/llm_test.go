package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMClassifierRequiresKey(t *testing.T) {
	_, err := NewLLMClassifier("")
	assert.Error(t, err)
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantKind   Kind
		wantTarget string
		wantErr    bool
	}{
		{
			name:       "plain JSON",
			content:    `{"intent": "switch_tab", "target": "github", "confidence": 0.92}`,
			wantKind:   KindSwitchTab,
			wantTarget: "github",
		},
		{
			name:       "code-fenced JSON",
			content:    "```json\n{\"intent\": \"navigate\", \"target\": \"youtube\", \"confidence\": 1}\n```",
			wantKind:   KindNavigate,
			wantTarget: "youtube",
		},
		{
			name:     "unlisted intent collapses to unknown",
			content:  `{"intent": "make_coffee", "target": "", "confidence": 0.5}`,
			wantKind: KindUnknown,
		},
		{
			name:    "no JSON at all",
			content: "I could not classify that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parseVerdict(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, in.Kind)
			assert.Equal(t, tt.wantTarget, in.Target)
			assert.Equal(t, "llm", in.Source)
		})
	}
}

func TestLLMClassifierClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "{\"intent\": \"open_tab\", \"target\": \"gmail\", \"confidence\": 0.9}"}}]
		}`))
	}))
	defer server.Close()

	c, err := NewLLMClassifier("test-key",
		WithBaseURL(server.URL),
		WithModel("test-model"),
	)
	require.NoError(t, err)

	in, err := c.Classify(context.Background(), "open a new tab with my email")
	require.NoError(t, err)
	assert.Equal(t, KindOpenTab, in.Kind)
	assert.Equal(t, "gmail", in.Target)
	assert.Equal(t, 0.9, in.Confidence)
}

func TestLLMClassifierErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, err := NewLLMClassifier("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "switch to github")
	assert.ErrorContains(t, err, "429")
}
