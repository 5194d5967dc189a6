package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/report"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/search"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

// scriptedSearcher 按关键词返回预设结果，每次调用消费一批
type scriptedSearcher struct {
	mu       sync.Mutex
	batches  map[string][][]model.Article
	errs     map[string]error
	requests []*search.Request
}

func (s *scriptedSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)

	if err := s.errs[req.Query]; err != nil {
		return nil, err
	}
	batches := s.batches[req.Query]
	if len(batches) == 0 {
		return &search.Response{}, nil
	}
	s.batches[req.Query] = batches[1:]
	return &search.Response{Results: batches[0]}, nil
}

type generateCall struct {
	keyword  string
	articles []model.Article
	previous []model.Article
}

type fakeGenerator struct {
	calls    []generateCall
	analysis func(keyword string, previous []model.Article) *report.Analysis
}

func (g *fakeGenerator) Generate(ctx context.Context, keyword string, articles, previous []model.Article) *report.Analysis {
	g.calls = append(g.calls, generateCall{keyword, articles, previous})
	if g.analysis != nil {
		return g.analysis(keyword, previous)
	}
	trend := report.NoPreviousData
	if len(previous) > 0 {
		trend = "trend of " + keyword
	}
	return &report.Analysis{Summary: "summary of " + keyword, TrendChange: trend}
}

type fakeArchive struct {
	saved []*model.KeywordReport
	err   error
}

func (a *fakeArchive) SaveKeywordReport(ctx context.Context, r *model.KeywordReport) error {
	if a.err != nil {
		return a.err
	}
	a.saved = append(a.saved, r)
	return nil
}

func articles(titles ...string) []model.Article {
	out := make([]model.Article, 0, len(titles))
	for _, t := range titles {
		out = append(out, model.Article{Title: t, PublishedAt: "2025-03-01T09:00:00Z", URL: "https://example.com/" + t})
	}
	return out
}

func fixedClock(ts string) func() time.Time {
	t, _ := time.ParseInLocation(model.TimestampLayout, ts, time.Local)
	return func() time.Time { return t }
}

func TestRunFirstThenRefresh(t *testing.T) {
	first := articles("a1", "a2", "a3")
	second := articles("b1", "b2")
	s := &scriptedSearcher{batches: map[string][][]model.Article{
		"Quantum Computing": {first, second},
	}}
	gen := &fakeGenerator{}
	st := store.New()
	e := New(s, gen, st, WithClock(fixedClock("2025-03-01 10:00:00")))

	res := e.Run(context.Background(), []string{"Quantum Computing"})
	assert.Equal(t, []string{"Quantum Computing"}, res.Updated)
	assert.Empty(t, res.Skipped)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, Notice{Level: LevelInfo, Message: StartMessage}, res.Notices[0])

	r, ok := st.Get("Quantum Computing")
	require.True(t, ok)
	assert.Equal(t, first, r.Current)
	assert.Empty(t, r.Previous)
	assert.Equal(t, "summary of Quantum Computing", r.CurrentSummary)
	assert.Equal(t, report.NoPreviousData, r.TrendChange)
	assert.Equal(t, "2025-03-01 10:00:00", r.LastUpdated)

	e.now = fixedClock("2025-03-02 11:30:00")
	e.Run(context.Background(), []string{"Quantum Computing"})

	r, _ = st.Get("Quantum Computing")
	assert.Equal(t, second, r.Current)
	assert.Equal(t, first, r.Previous)
	assert.Equal(t, "trend of Quantum Computing", r.TrendChange)
	assert.Equal(t, "2025-03-02 11:30:00", r.LastUpdated)

	require.Len(t, gen.calls, 2)
	assert.Nil(t, gen.calls[0].previous)
	assert.Equal(t, first, gen.calls[1].previous)
}

func TestRunSearchErrorKeepsEntryAndContinues(t *testing.T) {
	s := &scriptedSearcher{batches: map[string][][]model.Article{
		"AI":            {articles("x")},
		"Semiconductor": {articles("s1"), articles("s2")},
	}}
	st := store.New()
	e := New(s, &fakeGenerator{}, st)

	e.Run(context.Background(), []string{"AI", "Semiconductor"})
	before, _ := st.Get("AI")

	s.errs = map[string]error{"AI": errors.New("guardian api error (status 500): oops")}
	res := e.Run(context.Background(), []string{"AI", "Semiconductor"})

	assert.Equal(t, []string{"Semiconductor"}, res.Updated)
	assert.Equal(t, []string{"AI"}, res.Skipped)

	after, _ := st.Get("AI")
	assert.Equal(t, before, after)

	var warnings []Notice
	for _, n := range res.Notices {
		if n.Level == LevelWarning {
			warnings = append(warnings, n)
		}
	}
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, "status 500")
	assert.Equal(t, "Could not find recent articles for keyword 'AI'.", warnings[1].Message)

	sc, _ := st.Get("Semiconductor")
	assert.Equal(t, articles("s2"), sc.Current)
}

func TestRunZeroArticlesLeavesStoreUntouched(t *testing.T) {
	s := &scriptedSearcher{batches: map[string][][]model.Article{}}
	gen := &fakeGenerator{}
	st := store.New()
	e := New(s, gen, st)

	res := e.Run(context.Background(), []string{"Metaverse"})

	assert.Equal(t, []string{"Metaverse"}, res.Skipped)
	assert.Equal(t, 0, st.Len())
	assert.Empty(t, gen.calls)
	assert.Equal(t, Notice{
		Level:   LevelWarning,
		Keyword: "Metaverse",
		Message: "Could not find recent articles for keyword 'Metaverse'.",
	}, res.Notices[len(res.Notices)-1])
}

func TestRunGenerationFailureIsReportedAndStored(t *testing.T) {
	s := &scriptedSearcher{batches: map[string][][]model.Article{
		"AI":    {articles("a")},
		"Cloud": {articles("c")},
	}}
	gen := &fakeGenerator{analysis: func(keyword string, previous []model.Article) *report.Analysis {
		if keyword == "AI" {
			return &report.Analysis{
				Summary:     report.SummaryFailed,
				SummaryErr:  errors.New("quota exceeded"),
				TrendChange: report.NoPreviousData,
			}
		}
		return &report.Analysis{Summary: "ok", TrendChange: report.NoPreviousData}
	}}
	st := store.New()
	res := New(s, gen, st).Run(context.Background(), []string{"AI", "Cloud"})

	assert.Equal(t, []string{"AI", "Cloud"}, res.Updated)
	r, _ := st.Get("AI")
	assert.Equal(t, report.SummaryFailed, r.CurrentSummary)

	var errs []Notice
	for _, n := range res.Notices {
		if n.Level == LevelError {
			errs = append(errs, n)
		}
	}
	require.Len(t, errs, 1)
	assert.Equal(t, "AI", errs[0].Keyword)
	assert.Contains(t, errs[0].Message, "quota exceeded")
}

func TestRunArchivesReports(t *testing.T) {
	s := &scriptedSearcher{batches: map[string][][]model.Article{"AI": {articles("a")}}}
	archive := &fakeArchive{}
	e := New(s, &fakeGenerator{}, store.New(), WithArchive(archive), WithPageSize(5))

	res := e.Run(context.Background(), []string{"AI"})
	assert.Equal(t, []string{"AI"}, res.Updated)
	require.Len(t, archive.saved, 1)
	assert.Equal(t, "AI", archive.saved[0].Keyword)
	assert.Equal(t, 5, s.requests[0].PageSize)
}

func TestRunArchiveFailureIsWarning(t *testing.T) {
	s := &scriptedSearcher{batches: map[string][][]model.Article{"AI": {articles("a")}}}
	st := store.New()
	e := New(s, &fakeGenerator{}, st, WithArchive(&fakeArchive{err: errors.New("connection refused")}))

	res := e.Run(context.Background(), []string{"AI"})
	assert.Equal(t, []string{"AI"}, res.Updated)
	assert.Equal(t, 1, st.Len())
	last := res.Notices[len(res.Notices)-1]
	assert.Equal(t, LevelWarning, last.Level)
	assert.Contains(t, last.Message, "connection refused")
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b,,c ", []string{"a", "b", "c"}},
		{"Metaverse, AI, Semiconductor", []string{"Metaverse", "AI", "Semiconductor"}},
		{"", []string{}},
		{" , ,", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseKeywords(tt.in), tt.in)
	}
}
