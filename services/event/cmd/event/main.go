package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/rewardlab/event-platform/pkg/db"
	"github.com/rewardlab/event-platform/pkg/logging"
	loggingmw "github.com/rewardlab/event-platform/pkg/middleware/logging"
	"github.com/rewardlab/event-platform/services/event/internal/config"
	"github.com/rewardlab/event-platform/services/event/internal/httpserver"
	"github.com/rewardlab/event-platform/services/event/internal/models"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/search"
	"github.com/rewardlab/event-platform/services/event/internal/service"
	"github.com/rewardlab/event-platform/services/event/internal/stream"
)

func main() {
	if err := godotenv.Load("services/event/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "event")
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.Event{}, &models.Reward{}, &models.RequestReward{}, &models.Attendance{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	var producer *stream.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = stream.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		logger.Info("kafka producer enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka producer disabled")
	}

	var indexer *search.Indexer
	if cfg.ESURL != "" {
		es, err := search.NewClient(search.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer = search.NewIndexer(es, cfg.ESIndex)
		logger.Info("search indexing enabled", "index", cfg.ESIndex)
	} else {
		logger.Info("search indexing disabled")
	}

	deps := &httpserver.Deps{
		EventHandler:         &httpserver.EventHTTP{Svc: &service.EventService{Repo: gormRepo, Indexer: indexer}},
		RewardHandler:        &httpserver.RewardHTTP{Svc: &service.RewardService{Repo: gormRepo}},
		RequestRewardHandler: &httpserver.RequestRewardHTTP{Svc: &service.RequestRewardService{Repo: gormRepo, Producer: producer}},
		AttendanceHandler:    &httpserver.AttendanceHTTP{Svc: &service.AttendanceService{Repo: gormRepo}},
	}

	e := echo.New()
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
