package service

import (
	"encoding/json"
	nethttp "net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/app/display/internal/usecase"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// DashboardService 看板接口
type DashboardService struct {
	uc  *usecase.DashboardUseCase
	log *log.Helper
}

func NewDashboardService(uc *usecase.DashboardUseCase, logger log.Logger) *DashboardService {
	return &DashboardService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// ActionReq 运行请求，支持表单与 JSON
type ActionReq struct {
	Keywords string `json:"keywords"`
}

// ReportsReply 报告快照
type ReportsReply struct {
	Reports []*model.KeywordReport `json:"reports"`
}

// KeywordsReply 默认关键词
type KeywordsReply struct {
	Keywords string `json:"keywords"`
}

func (s *DashboardService) Keywords(ctx http.Context) error {
	return ctx.JSON(nethttp.StatusOK, &KeywordsReply{Keywords: s.uc.DefaultKeywords()})
}

func (s *DashboardService) Run(ctx http.Context) error {
	req, err := s.bind(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, s.uc.Run(ctx.Request().Context(), req.Keywords))
}

func (s *DashboardService) Refresh(ctx http.Context) error {
	req, err := s.bind(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, s.uc.Refresh(ctx.Request().Context(), req.Keywords))
}

func (s *DashboardService) Reports(ctx http.Context) error {
	return ctx.JSON(nethttp.StatusOK, &ReportsReply{Reports: s.uc.Reports()})
}

func (s *DashboardService) Healthz(ctx http.Context) error {
	return ctx.String(nethttp.StatusOK, "ok")
}

func (s *DashboardService) bind(ctx http.Context) (*ActionReq, error) {
	r := ctx.Request()
	req := &ActionReq{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			s.log.WithContext(r.Context()).Warnf("invalid request body: %v", err)
			return nil, errors.BadRequest("INVALID_BODY", "invalid request body")
		}
		return req, nil
	}
	req.Keywords = r.FormValue("keywords")
	return req, nil
}
