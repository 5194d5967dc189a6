package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultGuardianBaseURL = "https://content.guardianapis.com"
	DefaultModel           = "gpt-4o-mini"
	DefaultAnthropicModel  = "claude-haiku-4-5"
	DefaultPageSize        = 10
	DefaultHTTPAddr        = ":8000"
	DefaultHTTPTimeout     = "10m"
)

// DefaultKeywords 仪表盘输入框的默认关键词
var DefaultKeywords = []string{"Space Industry", "Artificial Intelligence", "Quantum Computing", "Climate Change"}

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Keywords    []string          `yaml:"keywords"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Server      ServerConfig      `yaml:"server"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider string `yaml:"provider"` // eino | openai | anthropic
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Timeout  int    `yaml:"timeout"` // 秒
}

// DBConfig 数据库相关配置，Host 为空时不归档
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider      string         `yaml:"provider"`
	PageSize      int            `yaml:"page_size"`
	EnrichTeasers bool           `yaml:"enrich_teasers"`
	Guardian      GuardianConfig `yaml:"guardian"`
	Tavily        TavilyConfig   `yaml:"tavily"`
	SearXNG       SearXNGConfig  `yaml:"searxng"`
	RSS           RSSConfig      `yaml:"rss"`
}

// GuardianConfig Guardian Content API 配置
type GuardianConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// RSSConfig 订阅源配置，FeedURL 为空时使用 Google News 搜索订阅
type RSSConfig struct {
	FeedURL string `yaml:"feed_url"`
	Timeout int    `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 模型调用限流配置，RPM 为 0 表示不限流
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// ServerConfig 展示服务配置
type ServerConfig struct {
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig HTTP 监听配置
type HTTPConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LoadConfig 从指定路径加载配置。
// 同目录或工作目录下的 .env 会先被加载，环境变量中的密钥优先于文件。
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GUARDIAN_API_KEY"); v != "" {
		c.Search.Guardian.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.Tavily.APIKey = v
	}

	// anthropic 只读取自己的密钥
	if c.LLM.Provider == "anthropic" {
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			c.LLM.APIKey = v
		}
		return
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "eino"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
		if c.LLM.Provider == "anthropic" {
			c.LLM.Model = DefaultAnthropicModel
		}
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "guardian"
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = DefaultPageSize
	}
	if c.Search.Guardian.BaseURL == "" {
		c.Search.Guardian.BaseURL = DefaultGuardianBaseURL
	}
	if len(c.Keywords) == 0 {
		c.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Server.HTTP.Addr == "" {
		c.Server.HTTP.Addr = DefaultHTTPAddr
	}
	if c.Server.HTTP.Timeout == "" {
		c.Server.HTTP.Timeout = DefaultHTTPTimeout
	}
}

// Validate 检查启动所需的密钥，缺失时调用方应直接退出
func (c *Config) Validate() error {
	var errs []error

	switch c.Search.Provider {
	case "guardian":
		if c.Search.Guardian.APIKey == "" {
			errs = append(errs, errors.New("guardian api key is missing (search.guardian.api_key or GUARDIAN_API_KEY)"))
		}
	case "tavily":
		if c.Search.Tavily.APIKey == "" {
			errs = append(errs, errors.New("tavily api key is missing"))
		}
	case "searxng":
		if c.Search.SearXNG.BaseURL == "" {
			errs = append(errs, errors.New("searxng base url is missing"))
		}
	case "rss":
	default:
		errs = append(errs, fmt.Errorf("unknown search provider: %s", c.Search.Provider))
	}

	switch c.LLM.Provider {
	case "eino", "openai":
		if c.LLM.APIKey == "" {
			errs = append(errs, errors.New("llm api key is missing (llm.api_key or OPENAI_API_KEY)"))
		}
	case "anthropic":
		if c.LLM.APIKey == "" {
			errs = append(errs, errors.New("llm api key is missing (llm.api_key or ANTHROPIC_API_KEY)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider: %s", c.LLM.Provider))
	}

	if c.Server.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.HTTP.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("invalid server.http.timeout: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RequestTimeout 返回模型调用超时，未配置时为 0（使用客户端默认值）
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
