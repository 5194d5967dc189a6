package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
)

// OpenAICompleter 直接使用 openai-go 的补全实现
type OpenAICompleter struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAICompleter 创建 openai-go 客户端；SDK 自带的重试被关闭，每次调用只发一次请求
func NewOpenAICompleter(cfg config.LLMConfig) *OpenAICompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if d := cfg.RequestTimeout(); d > 0 {
		opts = append(opts, option.WithRequestTimeout(d))
	}

	return &OpenAICompleter{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(cfg.Model),
	}
}

// Complete 实现 Completer
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
