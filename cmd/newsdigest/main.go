package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iabetor/newsdigest/internal/config"
	"github.com/iabetor/newsdigest/internal/digest"
	"github.com/iabetor/newsdigest/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，为空则使用内置的四个财经订阅源")
	output := flag.String("out", "", "输出文件路径，覆盖 digest.output")
	logLevel := flag.String("log-level", "", "日志级别，覆盖 log.level")
	printSummary := flag.Bool("print", false, "写入后在终端打印头条摘要")
	width := flag.Int("width", 80, "终端摘要宽度")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Digest.Output = *output
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Infof("[main] 收到信号 %v，取消抓取", sig)
		cancel()
	}()

	runner, err := digest.NewRunner(cfg, nil)
	if err != nil {
		logger.Errorf("[main] 创建 runner 失败: %v", err)
		logger.Sync()
		os.Exit(1)
	}

	rep, err := runner.Run(ctx)
	if err != nil {
		logger.Errorf("[main] 生成摘要失败: %v", err)
		logger.Sync()
		os.Exit(1)
	}

	if *printSummary {
		digest.PrintSummary(os.Stdout, rep, *width)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
