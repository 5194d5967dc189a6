package rss

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
)

// DefaultFeedURL Google News 搜索订阅，%s 为转义后的关键词
const DefaultFeedURL = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

var (
	reScriptTags = regexp.MustCompile(`(?is)<script.*?</script>`)
	reHTMLTags   = regexp.MustCompile(`<[^>]*>`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// Client 基于 RSS/Atom 搜索订阅的新闻源
type Client struct {
	feedURL string
	client  *http.Client
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// NewClient feedURL 中的 %s 会被替换为关键词
func NewClient(feedURL string, timeout int) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		feedURL: feedURL,
		client:  &http.Client{Timeout: t},
	}
}

// Search 拉取订阅并按条目顺序截取前 PageSize 条
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	feedURL := c.feedURL
	if strings.Contains(feedURL, "%s") {
		feedURL = fmt.Sprintf(feedURL, url.QueryEscape(req.Query))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", "trend-radar/1.0")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss feed error (status %d)", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("RSS parse failed: %w", err)
	}

	results := make([]model.Article, 0, req.Size())
	for _, item := range feed.Items {
		if len(results) >= req.Size() {
			break
		}
		results = append(results, model.Article{
			Title:       strings.TrimSpace(item.Title),
			PublishedAt: published(item),
			TrailText:   excerpt(item),
			URL:         item.Link,
		})
	}

	return &search.Response{Results: results}, nil
}

func published(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return item.Published
}

// excerpt 优先使用 Content，去掉 HTML 标签
func excerpt(item *gofeed.Item) string {
	raw := item.Content
	if raw == "" {
		raw = item.Description
	}
	text := reScriptTags.ReplaceAllString(raw, "")
	text = reHTMLTags.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
}
