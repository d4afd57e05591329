package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/souravslg/Downfiles/internal/adapter/http"
	"github.com/souravslg/Downfiles/internal/adapter/sqlite"
	"github.com/souravslg/Downfiles/internal/adapter/ytdlp"
	"github.com/souravslg/Downfiles/internal/config"
	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/logging"
	"github.com/souravslg/Downfiles/internal/registry"
	"github.com/souravslg/Downfiles/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("configuration error: %v", err)
	}

	logging.Infof("starting downfiles on port %d", cfg.Port)
	logging.Infof("temp dir: %s", cfg.TempDir)
	logging.Infof("history db: %s", cfg.HistoryDB)

	// Locate the external tools once; the merge capability is read-only
	// for the rest of the process lifetime.
	tool, err := ytdlp.Detect(cfg.YtDlpPath, cfg.FFmpegPath)
	if err != nil {
		logging.Fatalf("%v", err)
	}
	if tool.CanMerge() {
		logging.Infof("ffmpeg found, merged HD downloads enabled")
	}

	if cfg.CookiesFile != "" {
		if _, err := os.Stat(cfg.CookiesFile); err != nil {
			logging.Warnf("cookies file %s unreadable, continuing without credentials: %v", cfg.CookiesFile, err)
			cfg.CookiesFile = ""
		}
	}

	extractor := ytdlp.New(tool, ytdlp.Options{
		TempDir:      cfg.TempDir,
		CookiesFile:  cfg.CookiesFile,
		ProbeTimeout: cfg.ProbeSocketTimeout(),
		FetchTimeout: cfg.FetchSocketTimeout(),
	})

	history, err := sqlite.New(cfg.HistoryDB)
	if err != nil {
		logging.Fatalf("failed to initialize history database: %v", err)
	}
	defer history.Close()

	reg := registry.New()
	svc := domain.NewDownloadService(extractor, reg, history)

	pool := worker.New(svc, cfg.Workers, cfg.QueueSize)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := httpAdapter.NewServer(svc, pool, addr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go pool.Run(ctx)

	go func() {
		logging.Infof("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Errorf("HTTP server error: %v", err)
		}
	}()

	sig := <-sigCh
	logging.Infof("received signal %v, shutting down", sig)

	// Stop the workers; running extractor processes get the same cancel.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("HTTP server shutdown error: %v", err)
	}

	logging.Infof("shutdown complete")
}
