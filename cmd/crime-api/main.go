package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"stpaul-crime/config"
	"stpaul-crime/core/appbootstrap"
	"stpaul-crime/core/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.NewLogger().Errorf("config: %v", err)
		os.Exit(1)
	}
	logger := utils.NewLoggerWithOptions(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := appbootstrap.Run(ctx, cfg, logger); err != nil {
		logger.Errorf("server: %v", err)
		os.Exit(1)
	}
}
