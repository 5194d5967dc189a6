package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
)

// EinoCompleter 基于 eino ChatModel 的补全实现
type EinoCompleter struct {
	cm model.BaseChatModel
}

// NewEinoCompleter 初始化 OpenAI 协议兼容的 eino ChatModel
func NewEinoCompleter(ctx context.Context, cfg config.LLMConfig) (*EinoCompleter, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &EinoCompleter{cm: chatModel}, nil
}

// NewEinoCompleterWithModel 包装已有的 ChatModel
func NewEinoCompleterWithModel(cm model.BaseChatModel) *EinoCompleter {
	return &EinoCompleter{cm: cm}
}

// Complete 实现 Completer
func (c *EinoCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("empty response from chat model")
	}
	return resp.Content, nil
}
