package usecase

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

// mockRunner 记录调用并写入一条报告
type mockRunner struct {
	store *store.Store
	calls [][]string
}

func (m *mockRunner) Run(ctx context.Context, keywords []string) *engine.RunResult {
	m.calls = append(m.calls, keywords)
	for _, k := range keywords {
		m.store.Put(&model.KeywordReport{Keyword: k})
	}
	return &engine.RunResult{
		Updated: keywords,
		Notices: []engine.Notice{{Level: engine.LevelInfo, Message: engine.StartMessage}},
	}
}

func newTestUseCase() (*DashboardUseCase, *mockRunner) {
	st := store.New()
	r := &mockRunner{store: st}
	return NewDashboardUseCase(r, st, []string{"Metaverse", "AI", "Semiconductor"}, log.DefaultLogger), r
}

func TestDashboardUseCase_DefaultKeywords(t *testing.T) {
	uc, _ := newTestUseCase()
	assert.Equal(t, "Metaverse, AI, Semiconductor", uc.DefaultKeywords())
}

func TestDashboardUseCase_Run(t *testing.T) {
	uc, r := newTestUseCase()

	res := uc.Run(context.Background(), "AI, Cloud,, ")
	assert.True(t, res.Ran)
	assert.Equal(t, []string{"AI", "Cloud"}, res.Keywords)
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"AI", "Cloud"}, r.calls[0])

	require.Len(t, res.Notices, 2)
	assert.Equal(t, engine.StartMessage, res.Notices[0].Message)
	assert.Equal(t, engine.Notice{Level: LevelSuccess, Message: MsgRunCompleted}, res.Notices[1])

	reports := uc.Reports()
	require.Len(t, reports, 2)
	assert.Equal(t, "AI", reports[0].Keyword)
}

func TestDashboardUseCase_RunWithoutKeywords(t *testing.T) {
	uc, r := newTestUseCase()

	res := uc.Run(context.Background(), " , ")
	assert.False(t, res.Ran)
	assert.Empty(t, r.calls)
	assert.Equal(t, []engine.Notice{{Level: engine.LevelWarning, Message: MsgNoKeywords}}, res.Notices)
}

func TestDashboardUseCase_Refresh(t *testing.T) {
	uc, r := newTestUseCase()

	res := uc.Refresh(context.Background(), "AI")
	assert.False(t, res.Ran)
	assert.Equal(t, MsgNoPrevious, res.Notices[0].Message)
	assert.Empty(t, r.calls)

	uc.Run(context.Background(), "AI")

	res = uc.Refresh(context.Background(), "")
	assert.False(t, res.Ran)
	assert.Equal(t, MsgNoKeywords, res.Notices[0].Message)

	res = uc.Refresh(context.Background(), "AI")
	assert.True(t, res.Ran)
	assert.Len(t, r.calls, 2)
}
