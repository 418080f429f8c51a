package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/lenstube-reports/internal/analytics"
	"github.com/ignatzorin/lenstube-reports/internal/config"
	"github.com/ignatzorin/lenstube-reports/internal/db"
	httpHandlers "github.com/ignatzorin/lenstube-reports/internal/http/handlers"
	httpRouter "github.com/ignatzorin/lenstube-reports/internal/http/router"
	"github.com/ignatzorin/lenstube-reports/internal/lens"
	"github.com/ignatzorin/lenstube-reports/internal/logger"
	"github.com/ignatzorin/lenstube-reports/internal/report"
	"github.com/ignatzorin/lenstube-reports/internal/repository"
	"github.com/ignatzorin/lenstube-reports/internal/service"
	"github.com/ignatzorin/lenstube-reports/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Репозитории.
	reportRepo := repository.NewReportRepository(dbConn)
	eventRepo := repository.NewEventRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Lens и сервисы.
	lensClient := lens.NewClient(cfg.LensAPIURL)
	tracker := analytics.NewTracker(eventRepo)

	reportService := service.NewReportService(
		reportRepo,
		func(token string) report.Reporter { return lensClient.WithAccessToken(token) },
		func(viewerID uuid.UUID) report.Notifier { return ws.NewToastNotifier(hub, viewerID) },
		func(viewerID uuid.UUID) report.Tracker { return tracker.ForUser(viewerID) },
		service.DialogLimits{Size: cfg.DialogLimit, TTL: cfg.DialogTTL},
	)
	collectService := service.NewCollectModuleService(lensClient, cfg.CollectCacheSize, cfg.CollectCacheTTL)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:  httpHandlers.NewHealthHandler(dbConn),
		Report:  httpHandlers.NewReportHandler(reportService),
		Collect: httpHandlers.NewCollectHandler(collectService),
		WS:      httpHandlers.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
	}, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
