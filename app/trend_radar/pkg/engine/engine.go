package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/metrics"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/report"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search/factory"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/storage"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

// 提示级别
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// StartMessage 运行开始时的提示
const StartMessage = "Searching for new data and generating analysis reports. Please wait..."

// Notice 面向用户的一条运行提示
type Notice struct {
	Level   string `json:"level"`
	Keyword string `json:"keyword,omitempty"`
	Message string `json:"message"`
}

// RunResult 一次运行的结果
type RunResult struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
	Notices []Notice `json:"notices"`
}

func (r *RunResult) notify(level, keyword, format string, args ...any) {
	r.Notices = append(r.Notices, Notice{Level: level, Keyword: keyword, Message: fmt.Sprintf(format, args...)})
}

// Generator 报告生成
type Generator interface {
	Generate(ctx context.Context, keyword string, articles, previous []model.Article) *report.Analysis
}

// Archiver 报告归档
type Archiver interface {
	SaveKeywordReport(ctx context.Context, r *model.KeywordReport) error
}

// Engine 核心处理引擎
type Engine struct {
	searcher search.Searcher
	gen      Generator
	store    *store.Store
	archive  Archiver
	pageSize int
	now      func() time.Time

	// 同一时间只允许一次运行
	runMu sync.Mutex
}

type Option func(*Engine)

// WithArchive 每次写入存储时同时归档
func WithArchive(a Archiver) Option {
	return func(e *Engine) { e.archive = a }
}

// WithPageSize 每个关键词搜索的文章数
func WithPageSize(n int) Option {
	return func(e *Engine) { e.pageSize = n }
}

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New 创建引擎实例
func New(searcher search.Searcher, gen Generator, st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		searcher: searcher,
		gen:      gen,
		store:    st,
		pageSize: search.DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig 根据配置组装搜索、模型与归档；返回的 cleanup 用于释放数据库连接
func NewFromConfig(ctx context.Context, cfg *config.Config, st *store.Store) (*Engine, func(), error) {
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	completer, err := llm.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	gen := report.NewGenerator(completer, report.NewLimiter(cfg.Concurrency))

	opts := []Option{WithPageSize(cfg.Search.PageSize)}
	cleanup := func() {}

	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("数据库初始化失败: %w", err)
		}
		opts = append(opts, WithArchive(s))
		cleanup = func() {
			if err := s.Close(); err != nil {
				logger.Log.Warnf("关闭数据库失败: %v", err)
			}
		}
		logger.Log.Infof("报告归档已启用: %s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	}

	return New(searcher, gen, st, opts...), cleanup, nil
}

// Store 返回引擎使用的报告存储
func (e *Engine) Store() *store.Store {
	return e.store
}

// Run 依次处理每个关键词；单个关键词的失败不影响其他关键词
func (e *Engine) Run(ctx context.Context, keywords []string) *RunResult {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		metrics.KeywordsTracked.Set(float64(e.store.Len()))
	}()

	res := &RunResult{Updated: []string{}, Skipped: []string{}}
	res.notify(LevelInfo, "", StartMessage)
	logger.Log.Infof("开始处理 %d 个关键词: %s", len(keywords), strings.Join(keywords, ", "))

	for _, kw := range keywords {
		if e.runKeyword(ctx, kw, res) {
			res.Updated = append(res.Updated, kw)
		} else {
			res.Skipped = append(res.Skipped, kw)
		}
	}

	logger.Log.Infof("运行结束: 更新 %d 个, 跳过 %d 个", len(res.Updated), len(res.Skipped))
	return res
}

func (e *Engine) runKeyword(ctx context.Context, kw string, res *RunResult) bool {
	articles := e.fetch(ctx, kw, res)
	if len(articles) == 0 {
		res.notify(LevelWarning, kw, "Could not find recent articles for keyword '%s'.", kw)
		return false
	}

	var previous []model.Article
	if old, ok := e.store.Get(kw); ok {
		previous = old.Current
	}

	analysis := e.gen.Generate(ctx, kw, articles, previous)
	if analysis.SummaryErr != nil {
		res.notify(LevelError, kw, "Summary report generation error for '%s': %v", kw, analysis.SummaryErr)
	}
	if analysis.TrendErr != nil {
		res.notify(LevelError, kw, "Trend analysis error for '%s': %v", kw, analysis.TrendErr)
	}

	if previous == nil {
		previous = []model.Article{}
	}
	r := &model.KeywordReport{
		Keyword:        kw,
		Current:        articles,
		Previous:       previous,
		CurrentSummary: analysis.Summary,
		TrendChange:    analysis.TrendChange,
		LastUpdated:    e.now().Format(model.TimestampLayout),
	}
	e.store.Put(r)
	logger.Log.Infof("关键词 [%s] 已更新: %d 篇文章, 上次 %d 篇", kw, len(articles), len(previous))

	if e.archive != nil {
		if err := e.archive.SaveKeywordReport(ctx, r); err != nil {
			logger.Log.Warnf("归档失败 [%s]: %v", kw, err)
			res.notify(LevelWarning, kw, "Could not archive the report for '%s': %v", kw, err)
		}
	}
	return true
}

// fetch 搜索失败时记为警告并返回空结果
func (e *Engine) fetch(ctx context.Context, kw string, res *RunResult) []model.Article {
	resp, err := e.searcher.Search(ctx, &search.Request{Query: kw, PageSize: e.pageSize})
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		logger.Log.Errorf("搜索关键词失败 [%s]: %v", kw, err)
		res.notify(LevelWarning, kw, "Article search error while searching for '%s': %v", kw, err)
		return nil
	}
	if len(resp.Results) == 0 {
		metrics.SearchRequests.WithLabelValues("empty").Inc()
		return nil
	}
	metrics.SearchRequests.WithLabelValues("ok").Inc()
	return resp.Results
}

// ParseKeywords 按逗号切分，去掉首尾空白与空项
func ParseKeywords(s string) []string {
	keywords := []string{}
	for _, part := range strings.Split(s, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
