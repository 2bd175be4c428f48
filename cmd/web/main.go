package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tHeather/shop-frontend-cms-sub000/internal/api"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/config"
	apphttp "github.com/tHeather/shop-frontend-cms-sub000/internal/http"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/session"
	"github.com/tHeather/shop-frontend-cms-sub000/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Env),
	}))
	slog.SetDefault(logger)

	db, err := gorm.Open(mysql.Open(cfg.Session.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to session database: %v", err)
	}

	staging, err := storage.FromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init staging storage: %v", err)
	}
	logger.Info("staging_storage_ready", "driver", staging.Driver)

	r := apphttp.NewRouter(apphttp.RouterDeps{
		Logger:   logger,
		Config:   cfg,
		Sessions: session.NewGorm(db, cfg.Session.TTL),
		Staging:  staging,
		Backend:  api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout),
	})

	logger.Info("starting", "env", cfg.Env, "addr", cfg.HTTP.Addr(), "backend", cfg.Backend.BaseURL)
	if err := r.Run(cfg.HTTP.Addr()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func logLevel(env string) slog.Level {
	if env == "local" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
