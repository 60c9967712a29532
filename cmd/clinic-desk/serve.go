package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	pg "clinic-desk/internal/adapters/storage/postgres"
	"clinic-desk/internal/config"
	"clinic-desk/internal/domain/patients"
	"clinic-desk/internal/platform/logger"
	"clinic-desk/internal/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func newLogger(cfg *config.Config) *logger.ZeroLogger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    os.Stderr,
	})
}

func runServer(cfg *config.Config) error {
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer opened.Close()
		if err := pg.NewAuditRepo(opened).EnsureSchema(ctx); err != nil {
			return err
		}
		db = opened
	}

	views := patients.NewRegistry(cfg.ViewTTL, log)
	go views.Run(ctx)

	h, err := router.NewRouter(router.Options{
		Config: cfg,
		Logger: log,
		DB:     db,
		Views:  views,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// el alta/receta espera al backend; HTTP_TIMEOUT + margen
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":        srv.Addr,
			"dev_backend": cfg.DevBackend(),
			"filter_mode": cfg.FilterMode,
			"audit_db":    db != nil,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	views.CloseAll()
	return nil
}
