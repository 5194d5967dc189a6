package llm

import (
	"context"
	"fmt"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
)

// Completer 单轮对话补全：一条 user 消息进，一段文本出
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter 根据配置创建模型客户端
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is missing")
	}

	switch cfg.Provider {
	case "", "eino":
		return NewEinoCompleter(ctx, cfg)
	case "openai":
		return NewOpenAICompleter(cfg), nil
	case "anthropic":
		return NewAnthropicCompleter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
