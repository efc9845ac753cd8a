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
	"github.com/rewardlab/event-platform/services/auth/internal/config"
	"github.com/rewardlab/event-platform/services/auth/internal/httpserver"
	"github.com/rewardlab/event-platform/services/auth/internal/models"
	"github.com/rewardlab/event-platform/services/auth/internal/repo"
	"github.com/rewardlab/event-platform/services/auth/internal/service"
)

func main() {
	if err := godotenv.Load("services/auth/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "auth")
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Staff{}, &models.Permission{}); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	permSvc := &service.PermissionService{Repo: gormRepo}
	if err := permSvc.Reconcile(logging.IntoContext(initCtx, logger)); err != nil {
		cancel()
		log.Fatalf("permission reconcile: %v", err)
	}
	cancel()

	handler := &httpserver.AuthHTTP{
		Svc:  &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret},
		Perm: permSvc,
	}

	e := echo.New()
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{AuthHandler: handler})

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
