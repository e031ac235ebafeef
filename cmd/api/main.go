package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nexthire/resume-analyzer/internal/application/analyses"
	"github.com/nexthire/resume-analyzer/internal/config"
	domain "github.com/nexthire/resume-analyzer/internal/domain/analysis"
	"github.com/nexthire/resume-analyzer/internal/infra/ai/huggingface"
	openaiclient "github.com/nexthire/resume-analyzer/internal/infra/ai/openai"
	"github.com/nexthire/resume-analyzer/internal/infra/history"
	"github.com/nexthire/resume-analyzer/internal/infra/httpserver"
	"github.com/nexthire/resume-analyzer/internal/infra/storage"
	"github.com/nexthire/resume-analyzer/internal/logger"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second

	var files domain.FileStore
	switch cfg.Storage.Backend {
	case config.StorageMinio:
		m := cfg.Storage.Minio
		files, err = storage.NewMinioStore(ctx, m.Endpoint, m.Region, m.BucketName, m.AccessKey, m.SecretKey, m.UseSSL)
		if err != nil {
			zlog.Fatal("minio init error", zap.Error(err))
		}
	default:
		files = storage.NewMemoryStore(fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
	}

	var scorer domain.Scorer
	switch cfg.Provider.Strategy {
	case config.StrategyClassifier:
		scorer = huggingface.NewClient(cfg.Provider.APIKey, cfg.Provider.BaseURL, timeout)
	default:
		scorer = openaiclient.NewClient(cfg.Provider.APIKey, cfg.Provider.Model)
	}

	svc := &analyses.Service{
		Scorer:  scorer,
		History: history.NewMemoryStore(),
		Clock:   analyses.SystemClock{},
		Logger:  zlog,
		Timeout: timeout,
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(svc, files, zlog, cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server listening",
			zap.String("addr", addr),
			zap.String("strategy", cfg.Provider.Strategy),
			zap.String("storage", cfg.Storage.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	zlog.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}
