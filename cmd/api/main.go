package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskBoard/internal/app"
	"taskBoard/internal/config"
)

func main() {
	configPath := "config.yml"
	if env := os.Getenv("TASKBOARD_CONFIG"); env != "" {
		configPath = env
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("загрузка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		log.Fatalf("инициализация приложения: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("работа приложения: %v", err)
	}
}
