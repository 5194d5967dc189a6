package factory

import (
	"fmt"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/enrich"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/guardian"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/rss"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/searxng"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	s, err := newProvider(cfg.Search)
	if err != nil {
		return nil, err
	}
	if cfg.Search.EnrichTeasers {
		s = enrich.NewTeaserEnricher(s, 15*time.Second)
	}
	return s, nil
}

func newProvider(cfg config.SearchConfig) (search.Searcher, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "guardian"
	}

	switch provider {
	case "guardian":
		if cfg.Guardian.APIKey == "" {
			return nil, fmt.Errorf("guardian api key is missing")
		}
		return guardian.NewClient(cfg.Guardian.BaseURL, cfg.Guardian.APIKey, cfg.Guardian.Timeout), nil

	case "tavily":
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case "searxng":
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.SearXNG.BaseURL, cfg.SearXNG.Timeout), nil

	case "rss":
		return rss.NewClient(cfg.RSS.FeedURL, cfg.RSS.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
