package guardian

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
)

// DefaultBaseURL Guardian Content API 地址
const DefaultBaseURL = "https://content.guardianapis.com"

// showFields 请求的附加字段
const showFields = "headline,trailText,webPublicationDate"

// Client Guardian Content API 客户端
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient 创建一个新的 Guardian 客户端，timeout 单位为秒
func NewClient(baseURL, apiKey string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchResponse Guardian 响应外层
type SearchResponse struct {
	Response struct {
		Status  string         `json:"status"`
		Total   int            `json:"total"`
		Results []SearchResult `json:"results"`
	} `json:"response"`
}

// SearchResult 单条结果，所有字段均可能缺失
type SearchResult struct {
	WebTitle           string `json:"webTitle"`
	WebPublicationDate string `json:"webPublicationDate"`
	WebURL             string `json:"webUrl"`
	Fields             struct {
		Headline  string `json:"headline"`
		TrailText string `json:"trailText"`
	} `json:"fields"`
}

// Search 执行一次搜索，不重试
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("api-key", c.apiKey)
	q.Set("show-fields", showFields)
	q.Set("page-size", strconv.Itoa(req.Size()))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		// url.Error 会带上完整 URL，其中包含 api-key
		return nil, fmt.Errorf("request failed: %w", redact(err, c.apiKey))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("guardian api error (status %d): %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	results := make([]model.Article, 0, len(searchResp.Response.Results))
	for _, r := range searchResp.Response.Results {
		results = append(results, model.Article{
			Title:       r.WebTitle,
			PublishedAt: r.WebPublicationDate,
			TrailText:   r.Fields.TrailText,
			URL:         r.WebURL,
		})
	}

	return &search.Response{Results: results}, nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, secret string) error {
	if secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), secret, "***"), err: err}
}
