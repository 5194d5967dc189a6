package model

// Article 搜索接口返回的一篇新闻，抓取后不再修改
type Article struct {
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
	TrailText   string `json:"trail_text"`
	URL         string `json:"url"`
}

// Date 返回发布时间的日期部分（前 10 个字符）
func (a Article) Date() string {
	if len(a.PublishedAt) <= 10 {
		return a.PublishedAt
	}
	return a.PublishedAt[:10]
}

// KeywordReport 单个关键词的最新报告
type KeywordReport struct {
	Keyword        string    `json:"keyword"`
	Current        []Article `json:"current"`
	Previous       []Article `json:"previous"`
	CurrentSummary string    `json:"current_summary"`
	TrendChange    string    `json:"trend_change"`
	LastUpdated    string    `json:"last_updated"`
}

// TimestampLayout LastUpdated 的格式
const TimestampLayout = "2006-01-02 15:04:05"

// Clone 返回深拷贝，避免调用方修改存储中的切片
func (r *KeywordReport) Clone() *KeywordReport {
	if r == nil {
		return nil
	}
	c := *r
	c.Current = append([]Article{}, r.Current...)
	c.Previous = append([]Article{}, r.Previous...)
	return &c
}
