package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	trLogger "github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

// NewRadarEngine 初始化 trend_radar 引擎
func NewRadarEngine(cfg *config.Config, st *store.Store, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)

	// 初始化日志
	if err := trLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init trend_radar logger: %v", err)
		_ = trLogger.InitLogger("info", "") // 降级处理
	}

	eng, closeArchive, err := engine.NewFromConfig(context.Background(), cfg, st)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up trend_radar engine")
		closeArchive()
	}

	return eng, cleanup, nil
}
