package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"youapp-client/internal/api"
	"youapp-client/internal/config"
	"youapp-client/internal/service"
	"youapp-client/internal/storage"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("session storage: %v", err)
	}
	defer store.Close()

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout,
		api.WithTokenHeader(cfg.APITokenHeader),
		api.WithLogger(logger),
	)
	auth := service.NewAuthService(logger, client, store)
	defer auth.Close()
	profiles := service.NewProfileService(logger, client, auth)

	auth.Init(ctx)
	profiles.Start(ctx)
	defer profiles.Stop()

	app := &cli{
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		auth:     auth,
		profiles: profiles,
	}
	app.run(ctx)
}

// newLogger usa el logger de desarrollo en debug; si no, JSON a stderr desde el nivel pedido.
func newLogger(level string) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "debug" {
		return zap.NewDevelopment()
	}
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		atomic = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = atomic
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.Sampling = nil
	return zcfg.Build()
}
