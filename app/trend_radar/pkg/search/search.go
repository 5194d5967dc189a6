package search

import (
	"context"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// DefaultPageSize 未指定 PageSize 时请求的文章数
const DefaultPageSize = 10

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query    string
	PageSize int
}

// Size 返回生效的 PageSize
func (r *Request) Size() int {
	if r.PageSize <= 0 {
		return DefaultPageSize
	}
	return r.PageSize
}

// Response 通用搜索响应
type Response struct {
	Results []model.Article
}
