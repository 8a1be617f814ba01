package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"team-dashboard/internal/config"
	"team-dashboard/internal/database"
	"team-dashboard/internal/handler"
	"team-dashboard/internal/metrics"
	"team-dashboard/internal/middleware"
	"team-dashboard/internal/repository"
	"team-dashboard/internal/router"
	"team-dashboard/internal/service"
	"team-dashboard/internal/token"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	playerRepo := repository.NewPlayerRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	quoteRepo := repository.NewQuoteRepository(pool)
	commendationRepo := repository.NewCommendationRepository(pool)
	mediaRepo := repository.NewMediaRepository(pool)
	slog.Info("database ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	codec := token.NewCodec(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, codec, m)
	templateService := service.NewTemplateService(templateRepo)
	playerService := service.NewPlayerService(playerRepo)
	taskService := service.NewTaskService(taskRepo)
	feedService := service.NewFeedService(messageRepo, quoteRepo, commendationRepo, userRepo)
	mediaService, err := service.NewMediaService(mediaRepo, cfg.MediaRoot, cfg.ThumbnailRoot)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize media service: %w", err)
	}

	if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed default admin: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(authService, templateService, m)

	appRouter := router.New(cfg, authMiddleware, m,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		router.Handlers{
			Auth:     handler.NewAuthHandler(authService, cfg.Production()),
			User:     handler.NewUserHandler(authService),
			Template: handler.NewTemplateHandler(templateService),
			Player:   handler.NewPlayerHandler(playerService),
			Task:     handler.NewTaskHandler(taskService),
			Feed:     handler.NewFeedHandler(feedService),
			Media:    handler.NewMediaHandler(mediaService, cfg.MaxUploadSize),
		})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
