package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/store"
)

var (
	flagconf     string
	flagkeywords string
	flagout      string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagkeywords, "keywords", "", "comma separated keywords, overrides config")
	flag.StringVar(&flagout, "out", "", "markdown output file, stdout when empty")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动趋势雷达...")

	keywords := cfg.Keywords
	if flagkeywords != "" {
		keywords = engine.ParseKeywords(flagkeywords)
	}
	if len(keywords) == 0 {
		logger.Log.Fatal("配置错误: 未设置关键词 (keywords)")
	}

	ctx := context.Background()

	// 3. 组装引擎
	st := store.New()
	eng, cleanup, err := engine.NewFromConfig(ctx, cfg, st)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}
	defer cleanup()

	// 4. 运行
	res := eng.Run(ctx, keywords)
	for _, n := range res.Notices {
		switch n.Level {
		case engine.LevelError:
			logger.Log.Error(n.Message)
		case engine.LevelWarning:
			logger.Log.Warn(n.Message)
		}
	}

	// 5. 输出 Markdown
	var out io.Writer = os.Stdout
	if flagout != "" {
		f, err := os.Create(flagout)
		if err != nil {
			logger.Log.Fatalf("无法创建输出文件: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := renderMarkdown(out, st.All()); err != nil {
		logger.Log.Fatalf("生成 Markdown 失败: %v", err)
	}
	logger.Log.Infof("趋势雷达报告生成完毕: 更新 %d 个关键词, 跳过 %d 个", len(res.Updated), len(res.Skipped))
}
