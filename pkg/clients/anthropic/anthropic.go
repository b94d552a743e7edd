package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/kitchen/pkg/clients/llm"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	defaultModel   = "claude-3-haiku-20240307"
	maxTokens      = 4096
)

// Config holds the Messages API settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type anthropicClient struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a configured Anthropic client.
func NewClient(cfg Config) llm.Model {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(base, "/")).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(60 * time.Second)

	return &anthropicClient{httpClient: client, model: model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the request through the Messages API. For schema-constrained requests the
// schema is inlined into the system prompt and the reply is prefilled with the opening
// bracket to force JSON.
func (c *anthropicClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	system := req.System
	prefill := ""
	if req.Schema != nil {
		schemaJSON, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("encode response schema: %w", err)
		}
		system = strings.TrimSpace(system + "\n\nRespond with ONLY JSON matching this JSON schema, no prose:\n" + string(schemaJSON))
		prefill = "{"
		if req.Schema.Type == llm.TypeArray {
			prefill = "["
		}
	}

	messages := buildMessages(req)
	if prefill != "" {
		messages = append(messages, message{Role: "assistant", Content: []contentBlock{{Type: "text", Text: prefill}}})
	}

	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	var errBody apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(&errBody).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		if errBody.Error.Message != "" {
			return "", fmt.Errorf("anthropic api error: status=%d, message=%s", resp.StatusCode(), errBody.Error.Message)
		}
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}

	var b strings.Builder
	for _, block := range respBody.Content {
		if block.Type == "" || block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("empty response from ai")
	}

	// Reconstruct the full JSON since we prefilled the opening bracket
	return prefill + b.String(), nil
}

// buildMessages converts history plus the new prompt into alternating user/assistant turns.
// The API requires the first turn to come from the user, so leading model turns are dropped.
func buildMessages(req llm.Request) []message {
	messages := make([]message, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := "user"
		if turn.Role == llm.RoleModel {
			role = "assistant"
		}
		if len(messages) == 0 && role == "assistant" {
			continue
		}
		messages = append(messages, message{Role: role, Content: []contentBlock{{Type: "text", Text: turn.Text}}})
	}

	current := message{Role: "user"}
	if req.Image != nil {
		current.Content = append(current.Content, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: req.Image.MIMEType,
				Data:      base64.StdEncoding.EncodeToString(req.Image.Data),
			},
		})
	}
	current.Content = append(current.Content, contentBlock{Type: "text", Text: req.Prompt})
	return append(messages, current)
}
