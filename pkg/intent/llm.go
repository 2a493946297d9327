package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go"
)

// DefaultBaseURL is the default OpenAI-compatible API base URL.
const DefaultBaseURL = "https://api.openai.com/v1"

// classifyPrompt instructs the model to answer with a single JSON
// object so the response parses deterministically.
const classifyPrompt = `You classify voice commands for a browser assistant.
Reply with one JSON object and nothing else:
{"intent": "<switch_tab|navigate|open_tab|list_tabs|help|unknown>", "target": "<free text argument or empty>", "confidence": <0.0-1.0>}
switch_tab focuses an already open tab; navigate loads a destination in the current tab; open_tab loads it in a new tab.`

// LLMClassifier classifies utterances with a single chat completion
// against an OpenAI-compatible API.
type LLMClassifier struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// LLMOption configures an LLMClassifier.
type LLMOption func(*LLMClassifier)

// WithModel sets the model to use for classification.
func WithModel(model string) LLMOption {
	return func(c *LLMClassifier) {
		c.model = model
	}
}

// WithBaseURL sets a custom API base URL (Azure, local inference).
func WithBaseURL(baseURL string) LLMOption {
	return func(c *LLMClassifier) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewLLMClassifier creates an LLM-backed classifier.
func NewLLMClassifier(apiKey string, opts ...LLMOption) (*LLMClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &LLMClassifier{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      "gpt-4o-mini",
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
			c.baseURL = strings.TrimSuffix(envBaseURL, "/")
		}
	}

	return c, nil
}

// Classify sends the utterance for classification and parses the
// model's JSON verdict.
func (c *LLMClassifier) Classify(ctx context.Context, utterance string) (Intent, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(classifyPrompt),
		openai.UserMessage(utterance),
	}

	reqBody := map[string]interface{}{
		"model":       c.model,
		"messages":    messages,
		"temperature": 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Intent{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return Intent{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Intent{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return Intent{}, fmt.Errorf("API request failed with status %d", resp.StatusCode)
		}
		return Intent{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return Intent{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Intent{}, fmt.Errorf("response contained no choices")
	}

	return parseVerdict(completion.Choices[0].Message.Content)
}

// parseVerdict extracts the intent JSON from the model's reply,
// tolerating code fences and surrounding prose.
func parseVerdict(content string) (Intent, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return Intent{}, fmt.Errorf("no JSON object in response: %q", content)
	}

	var verdict struct {
		Intent     string  `json:"intent"`
		Target     string  `json:"target"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &verdict); err != nil {
		return Intent{}, fmt.Errorf("failed to parse intent JSON: %w", err)
	}

	kind := Kind(verdict.Intent)
	switch kind {
	case KindSwitchTab, KindNavigate, KindOpenTab, KindListTabs, KindHelp, KindUnknown:
	default:
		kind = KindUnknown
	}

	return Intent{
		Kind:       kind,
		Target:     strings.TrimSpace(verdict.Target),
		Confidence: verdict.Confidence,
		Source:     "llm",
	}, nil
}
