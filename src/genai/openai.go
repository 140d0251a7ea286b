package genai

import (
	"context"
	"net/http"
	"strings"

	"finpal-server/src/apperr"
	"finpal-server/src/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model, baseURL string, client *http.Client) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	opt := applyOptions(o.model, opts)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: opt.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		logger.Get().Error("openai request failed", zap.String("model", opt.model), zap.Error(err))
		return "", apperr.Generation(errRequestFailed, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", apperr.Generation(errEmptyResponse, nil)
	}
	return resp.Choices[0].Message.Content, nil
}
