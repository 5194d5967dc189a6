package store

import (
	"sync"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// Store 进程内的关键词报告存储，按首次写入顺序保存
type Store struct {
	mu      sync.RWMutex
	order   []string
	reports map[string]*model.KeywordReport
}

// New 创建空存储
func New() *Store {
	return &Store{reports: make(map[string]*model.KeywordReport)}
}

// Get 返回报告副本；不存在时 ok 为 false
func (s *Store) Get(keyword string) (*model.KeywordReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[keyword]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Put 整体替换关键词的报告
func (s *Store) Put(r *model.KeywordReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[r.Keyword]; !ok {
		s.order = append(s.order, r.Keyword)
	}
	s.reports[r.Keyword] = r.Clone()
}

// Keywords 按首次写入顺序返回所有关键词
func (s *Store) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...)
}

// All 按顺序返回所有报告的副本
func (s *Store) All() []*model.KeywordReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.KeywordReport, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.reports[k].Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
