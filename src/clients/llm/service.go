package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/utils/requests"
)

var ErrEmptyCompletion = errors.New("completion contained no choices")

type LLMClientI interface {
	CreateChatCompletion(ctx context.Context, system, user string) (string, error)
}

type LLMClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
	Model   string
}

// NewClient creates a new instance of LLMClient
func NewClient(cfg *config.Config) *LLMClient {
	return &LLMClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.LLM.BaseURL,
		APIKey:  cfg.ExternalClients.LLM.APIKey,
		Model:   cfg.ExternalClients.LLM.Model,
	}
}

// CreateChatCompletion sends one system+user exchange and returns the text of
// the first choice. JSON response mode is requested, but callers still parse
// the content defensively since not every model honors it.
func (c *LLMClient) CreateChatCompletion(ctx context.Context, system, user string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	body := ChatCompletionRequest{
		Model: c.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.2,
		MaxTokens:      512,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.API.Post(ctx, endpoint, c.APIKey, nil, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var completion ChatCompletionResponse
	if err = json.Unmarshal(responseBody, &completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("llm provider error %s: %s", completion.Error.Type, completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return completion.Choices[0].Message.Content, nil
}
