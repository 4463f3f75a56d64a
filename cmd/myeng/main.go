package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/config"
	"github.com/conorfennell/myeng/internal/importer"
	"github.com/conorfennell/myeng/internal/logger"
	"github.com/conorfennell/myeng/internal/service"
	"github.com/conorfennell/myeng/internal/storage"
	"github.com/conorfennell/myeng/internal/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Open the database
	db, err := storage.Open(cfg.DB.Path, cfg.DB.BusyTimeout)
	if err != nil {
		return err
	}
	defer db.Close()
	lg.Info("database opened", zap.String("path", cfg.DB.Path))

	// 2. Import a question bank if one was given
	if cfg.Import.Source != "" {
		report, err := importer.New(db, cfg.Import.ReposDir, lg).Run(ctx, cfg.Import.Source)
		if err != nil {
			return err
		}
		for _, e := range report.Errors {
			lg.Warn("import error", zap.Error(e))
		}
	}

	// 3. Wire services and routes
	srv := web.NewServer(
		web.Options{Prefix: cfg.HTTP.Prefix, StrictStatus: cfg.HTTP.StrictStatus},
		service.NewUserService(db, lg),
		service.NewQuestionService(db, lg),
		service.NewTestService(db, lg),
		db,
		lg,
	)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// 4. Serve until a shutdown signal arrives
	errCh := make(chan error, 1)
	go func() {
		lg.Info("server started", zap.String("addr", cfg.HTTP.Addr), zap.String("prefix", cfg.HTTP.Prefix))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
