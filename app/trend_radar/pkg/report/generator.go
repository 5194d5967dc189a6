package report

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/metrics"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

const (
	// NoPreviousData 没有上次结果时的趋势占位文本
	NoPreviousData = "No previous search data available to compare trend changes."
	// SummaryFailed 摘要生成失败时的占位文本
	SummaryFailed = "Failed to generate the summary report."
	// TrendFailed 趋势对比失败时的占位文本
	TrendFailed = "Failed to generate the trend change analysis."
)

// Analysis 一次生成的结果；Err 字段非空时对应文本为占位符
type Analysis struct {
	Summary     string
	TrendChange string
	SummaryErr  error
	TrendErr    error
	Cached      bool
}

// Failed 任一调用失败
func (a *Analysis) Failed() bool {
	return a.SummaryErr != nil || a.TrendErr != nil
}

// Generator 调用模型生成摘要与趋势对比
type Generator struct {
	completer llm.Completer
	limiter   *rate.Limiter
	cache     *Cache
}

// NewGenerator limiter 为 nil 时不限速
func NewGenerator(completer llm.Completer, limiter *rate.Limiter) *Generator {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Generator{
		completer: completer,
		limiter:   limiter,
		cache:     NewCache(),
	}
}

// NewLimiter 根据并发配置创建令牌桶；RPM 优先于 QPS，都未配置时返回 nil
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	switch {
	case cfg.RPM > 0:
		return rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), 1)
	case cfg.QPS > 0:
		return rate.NewLimiter(rate.Limit(cfg.QPS), cfg.QPS)
	default:
		return nil
	}
}

// Cache 返回生成器使用的缓存
func (g *Generator) Cache() *Cache {
	return g.cache
}

// Generate 生成关键词的摘要，previous 非空时额外生成趋势对比
func (g *Generator) Generate(ctx context.Context, keyword string, articles, previous []model.Article) *Analysis {
	key := cacheKey(keyword, articles, previous)
	if v, ok := g.cache.get(key); ok {
		metrics.AnalysisCache.WithLabelValues("hit").Inc()
		logger.Log.Debugf("命中生成缓存: %s", keyword)
		return &Analysis{Summary: v.summary, TrendChange: v.trendChange, Cached: true}
	}
	metrics.AnalysisCache.WithLabelValues("miss").Inc()

	a := &Analysis{}

	summary, err := g.complete(ctx, "summary", summaryPrompt(keyword, articles))
	if err != nil {
		logger.Log.Errorf("摘要生成失败 [%s]: %v", keyword, err)
		a.SummaryErr = err
		a.Summary = SummaryFailed
	} else {
		a.Summary = summary
	}

	if len(previous) == 0 {
		a.TrendChange = NoPreviousData
	} else {
		trend, err := g.complete(ctx, "trend", trendPrompt(keyword, articles, previous))
		if err != nil {
			logger.Log.Errorf("趋势对比生成失败 [%s]: %v", keyword, err)
			a.TrendErr = err
			a.TrendChange = TrendFailed
		} else {
			a.TrendChange = trend
		}
	}

	if !a.Failed() {
		g.cache.put(key, cachedAnalysis{summary: a.Summary, trendChange: a.TrendChange})
	}
	return a
}

func (g *Generator) complete(ctx context.Context, kind, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		metrics.LLMRequests.WithLabelValues(kind, "error").Inc()
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	out, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		metrics.LLMRequests.WithLabelValues(kind, "error").Inc()
		return "", err
	}
	metrics.LLMRequests.WithLabelValues(kind, "ok").Inc()
	return out, nil
}
