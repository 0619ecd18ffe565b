package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gamerate/backend/internal/config"
	"gamerate/backend/internal/database"
	"gamerate/backend/internal/hub"
	"gamerate/backend/internal/logging"
	"gamerate/backend/internal/metrics"
	"gamerate/backend/internal/server"
	"gamerate/backend/internal/service"
	"gamerate/backend/internal/store"

	"github.com/gin-gonic/gin"
)

func init() {
	config.LoadConfig()
}

// @title           Game Rating API
// @version         1.0
// @description     Browse games, add new ones and rate them on music, art and gameplay.
// @host            localhost:8080
// @BasePath        /api
func main() {
	if err := run(config.AppConfig); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()
	logger.Info("store ready", logging.FieldDriver, cfg.DatabaseDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDemo {
		seeded, err := store.SeedDemo(ctx, st)
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("demo game seeded")
		}
	}

	recorder := metrics.NewRecorder()
	events := hub.NewHub()
	svc := service.NewGameService(st, events, recorder, logger)

	router := server.NewRouter(server.Deps{
		Config:  cfg,
		Service: svc,
		Hub:     events,
		Metrics: recorder,
		Logger:  logger,
	})

	logger.Info("swagger UI available", "url", "http://localhost:"+cfg.Port+"/swagger/index.html")
	return server.Run(ctx, cfg.Addr(), router, cfg.ShutdownTimeout, logger)
}

// openStore picks the memory store or a gorm-backed store from the driver.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Database connection established.")

	return store.NewGormStore(db), func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}, nil
}
