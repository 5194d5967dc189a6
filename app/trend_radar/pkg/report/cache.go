package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// Cache 生成结果的记忆化缓存，进程内有效，不淘汰
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cachedAnalysis
}

type cachedAnalysis struct {
	summary     string
	trendChange string
}

// NewCache 创建空缓存
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cachedAnalysis)}
}

// cacheKey 对 (keyword, 当前文章, 上次文章) 的 JSON 编码取 SHA-256
func cacheKey(keyword string, articles, previous []model.Article) string {
	// nil 与空切片视为同一输入
	if len(articles) == 0 {
		articles = []model.Article{}
	}
	if len(previous) == 0 {
		previous = []model.Article{}
	}

	payload, _ := json.Marshal(struct {
		Keyword  string          `json:"keyword"`
		Articles []model.Article `json:"articles"`
		Previous []model.Article `json:"previous"`
	}{keyword, articles, previous})

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) get(key string) (cachedAnalysis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) put(key string, v cachedAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = v
}

// Len 返回缓存条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
