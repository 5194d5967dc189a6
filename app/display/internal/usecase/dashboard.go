package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

const (
	// LevelSuccess 运行完成提示
	LevelSuccess = "success"

	MsgNoKeywords   = "Please enter keywords to analyze."
	MsgNoPrevious   = "No previous data available. Please run 'Search & Analysis' first."
	MsgRunCompleted = "Data search and analysis completed!"
)

// Runner 执行一次搜索与分析
type Runner interface {
	Run(ctx context.Context, keywords []string) *engine.RunResult
}

// ActionResult 一次页面操作的结果
type ActionResult struct {
	Keywords []string        `json:"keywords"`
	Ran      bool            `json:"ran"`
	Notices  []engine.Notice `json:"notices"`
}

// DashboardUseCase 看板业务逻辑
type DashboardUseCase struct {
	runner   Runner
	store    *store.Store
	defaults []string
	log      *log.Helper
}

// NewDashboardUseCase 创建看板业务逻辑实例
func NewDashboardUseCase(runner Runner, st *store.Store, defaults []string, logger log.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		runner:   runner,
		store:    st,
		defaults: defaults,
		log:      log.NewHelper(logger),
	}
}

// DefaultKeywords 输入框的默认值
func (uc *DashboardUseCase) DefaultKeywords() string {
	return strings.Join(uc.defaults, ", ")
}

// Run 对输入的关键词执行搜索与分析
func (uc *DashboardUseCase) Run(ctx context.Context, input string) *ActionResult {
	keywords := engine.ParseKeywords(input)
	if len(keywords) == 0 {
		return warn(keywords, MsgNoKeywords)
	}
	return uc.run(ctx, keywords)
}

// Refresh 与 Run 相同，但要求之前至少运行过一次
func (uc *DashboardUseCase) Refresh(ctx context.Context, input string) *ActionResult {
	keywords := engine.ParseKeywords(input)
	if uc.store.Len() == 0 {
		return warn(keywords, MsgNoPrevious)
	}
	if len(keywords) == 0 {
		return warn(keywords, MsgNoKeywords)
	}
	return uc.run(ctx, keywords)
}

// Reports 按标签页顺序返回所有报告
func (uc *DashboardUseCase) Reports() []*model.KeywordReport {
	return uc.store.All()
}

func (uc *DashboardUseCase) run(ctx context.Context, keywords []string) *ActionResult {
	uc.log.WithContext(ctx).Infof("run search & analysis: %s", strings.Join(keywords, ", "))

	res := uc.runner.Run(ctx, keywords)
	notices := append(res.Notices, engine.Notice{Level: LevelSuccess, Message: MsgRunCompleted})
	return &ActionResult{Keywords: keywords, Ran: true, Notices: notices}
}

func warn(keywords []string, msg string) *ActionResult {
	return &ActionResult{
		Keywords: keywords,
		Notices:  []engine.Notice{{Level: engine.LevelWarning, Message: msg}},
	}
}
