package enrich

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
)

// maxTeaserChars 补全摘要的最大长度
const maxTeaserChars = 300

// FetchFunc 抓取页面并返回摘要文本
type FetchFunc func(ctx context.Context, url string) (string, error)

// TeaserEnricher 为缺少摘要的搜索结果补全 teaser
type TeaserEnricher struct {
	next  search.Searcher
	fetch FetchFunc
}

// Ensure TeaserEnricher implements search.Searcher
var _ search.Searcher = (*TeaserEnricher)(nil)

// NewTeaserEnricher 使用 readability 抓取原文
func NewTeaserEnricher(next search.Searcher, timeout time.Duration) *TeaserEnricher {
	return NewTeaserEnricherWithFetch(next, readabilityFetch(timeout))
}

// NewTeaserEnricherWithFetch 使用自定义的抓取函数
func NewTeaserEnricherWithFetch(next search.Searcher, fetch FetchFunc) *TeaserEnricher {
	return &TeaserEnricher{next: next, fetch: fetch}
}

// Search 先调用下层搜索，再逐条补全空摘要；补全失败不影响结果
func (e *TeaserEnricher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	resp, err := e.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	for i, a := range resp.Results {
		if a.TrailText != "" || a.URL == "" {
			continue
		}
		text, err := e.fetch(ctx, a.URL)
		if err != nil {
			logger.Log.Warnf("原文抓取失败，保留空摘要 [%s]: %v", a.URL, err)
			continue
		}
		resp.Results[i].TrailText = truncate(strings.TrimSpace(text), maxTeaserChars)
	}
	return resp, nil
}

func readabilityFetch(timeout time.Duration) FetchFunc {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return func(ctx context.Context, url string) (string, error) {
		article, err := readability.FromURL(url, timeout)
		if err != nil {
			return "", err
		}
		if article.Excerpt != "" {
			return article.Excerpt, nil
		}
		return article.TextContent, nil
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "..."
}
