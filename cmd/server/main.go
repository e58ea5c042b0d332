package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/api"
	"github.com/hostelops/reportgen/internal/config"
	"github.com/hostelops/reportgen/internal/dashboard"
	"github.com/hostelops/reportgen/internal/logger"
	"github.com/hostelops/reportgen/internal/middleware"
	"github.com/hostelops/reportgen/internal/queue"
	"github.com/hostelops/reportgen/internal/registry"
	"github.com/hostelops/reportgen/internal/repository"
	"github.com/hostelops/reportgen/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	store, err := repository.NewPostgresJobStore(cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to Postgres")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close job store")
		}
	}()

	q, err := queue.NewQueue(cfg.Redis.Addr, store)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to Redis")
	}
	defer func() {
		if err := q.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close queue")
		}
	}()

	reg := registry.New(store.DB(), cfg.Reports.OutputDir, cfg.Reports.TemplateDir)
	svc := service.New(reg, q, cfg.Reports.OutputDir)
	dash := dashboard.NewDashboard(store, q)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.MetricsMiddleware(api.NewAPI(svc, store, dash)))
	mux.Handle("/metrics", promhttp.Handler())

	go startMetricsCollector(store, q)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logrus.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}
}
