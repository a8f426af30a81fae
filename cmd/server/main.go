package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/job-intake/backend/internal/api"
	"github.com/job-intake/backend/internal/config"
	"github.com/job-intake/backend/internal/logger"
	"github.com/job-intake/backend/internal/metrics"
	"github.com/job-intake/backend/internal/storage"
	"github.com/job-intake/backend/internal/upload"
	"go.uber.org/zap"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Printf("Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	configPath := os.Getenv("APP_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, configPath, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, configPath string, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize staging storage
	store, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Start background staging cleanup
	janitor := storage.NewJanitor(store, cfg.CleanupInterval(), cfg.StagingTTL(), log.Named("janitor"))
	janitor.OnCleaned = func(n int) {
		metrics.StagingFilesCleaned.Add(float64(n))
	}
	go janitor.Run(ctx)

	uploadMgr := upload.NewManager(store, cfg.UploadLimits())

	e := api.NewServer(&api.Dependencies{
		Uploads: uploadMgr,
		Logger:  log,
		Version: Version,
	}, api.MiddlewareOptions{
		EnableCORS:     cfg.Server.EnableCORS,
		AllowOrigins:   cfg.AllowedOrigins(),
		BodyLimit:      cfg.Server.BodyLimit.String(),
		RequestLogging: cfg.Logging.EnableRequestLogging,
	})

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.Info("starting job application intake server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("config", configPath),
		zap.String("listen", cfg.GetServerAddr()),
		zap.String("uploads_dir", cfg.GetUploadDir()),
		zap.Int64("max_file_size", int64(cfg.Upload.MaxFileSize)),
		zap.Duration("staging_ttl", cfg.StagingTTL()),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
