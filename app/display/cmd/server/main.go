package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/app/display/internal/server"
	"github.com/iWorld-y/trend_radar/app/display/internal/service"
	"github.com/iWorld-y/trend_radar/app/display/internal/usecase"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "display"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	// 初始化日志记录器，包含时间戳、调用者信息、服务ID等上下文
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(logger)

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		helper.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		helper.Fatalf("invalid config: %v", err)
	}

	app, cleanup, err := initApp(cfg, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}

// initApp 组装存储、引擎与 HTTP 服务
func initApp(cfg *config.Config, logger log.Logger) (*kratos.App, func(), error) {
	st := store.New()
	eng, cleanup, err := server.NewRadarEngine(cfg, st, logger)
	if err != nil {
		return nil, nil, err
	}

	uc := usecase.NewDashboardUseCase(eng, st, cfg.Keywords, logger)
	svc := service.NewDashboardService(uc, logger)
	hs := server.NewHTTPServer(cfg.Server.HTTP, svc, logger)

	return newApp(logger, hs), cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
