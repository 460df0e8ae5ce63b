package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/lifescan/internal/scan"
)

const (
	defaultCompletionsURL = "https://api.openai.com/v1/chat/completions"
	systemInstruction     = "You summarize health image analysis safely and briefly."
	model                 = "gpt-4o-mini"
	requestTimeout        = 20 * time.Second
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIClient makes a single bounded chat-completion call per scan.
// No retry: a failed call fails the request.
type OpenAIClient struct {
	apiKey string
	url    string
	httpc  *http.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		url:    defaultCompletionsURL,
		httpc:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *OpenAIClient) Narrate(ctx context.Context, scores scan.ScoreSet) (string, error) {
	prompt, err := buildPrompt(scores)
	if err != nil {
		return "", fmt.Errorf("%w: %v", scan.ErrNarration, err)
	}

	payload, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", scan.ErrNarration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", scan.ErrNarration, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", scan.ErrNarration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: status %d: %s", scan.ErrNarration, resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", scan.ErrNarration, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", scan.ErrNarration)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func buildPrompt(scores scan.ScoreSet) (string, error) {
	encoded, err := json.Marshal(scores)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Scan results: %s\nProvide a brief health summary.", encoded), nil
}
