package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sellerops/internal/config"
	"sellerops/internal/db"
	httpapi "sellerops/internal/http"
	applog "sellerops/internal/log"
	"sellerops/internal/repository"
	"sellerops/internal/service"
)

func main() {
	logger := applog.New("server")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database error", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		logger.Error("migration error", "error", err)
		os.Exit(1)
	}

	repo := repository.New(pool)
	svc := service.New(repo, logger.WithComponent("service"), cfg.DataDir, cfg.SessionTTL)
	if err := svc.EnsureDefaultUser(ctx); err != nil {
		logger.Error("default user init error", "error", err)
		os.Exit(1)
	}
	handler := httpapi.NewHandler(svc)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("backend listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("force close failed", "error", closeErr)
		}
	}
}
