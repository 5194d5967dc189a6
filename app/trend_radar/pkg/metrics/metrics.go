package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trend_radar"

var (
	// SearchRequests 文章搜索次数，result: ok | empty | error
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Article search calls by outcome",
	}, []string{"result"})

	// LLMRequests 模型调用次数，kind: summary | trend，result: ok | error
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_requests_total",
		Help:      "Text-generation calls by kind and outcome",
	}, []string{"kind", "result"})

	// AnalysisCache 生成结果缓存命中情况，result: hit | miss
	AnalysisCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_cache_total",
		Help:      "Report generator cache lookups",
	}, []string{"result"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of one orchestrator run over all keywords",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	KeywordsTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "keywords_tracked",
		Help:      "Number of keywords with a stored report",
	})
)
