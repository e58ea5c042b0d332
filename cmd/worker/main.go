package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/config"
	"github.com/hostelops/reportgen/internal/logger"
	"github.com/hostelops/reportgen/internal/notify"
	"github.com/hostelops/reportgen/internal/queue"
	"github.com/hostelops/reportgen/internal/registry"
	"github.com/hostelops/reportgen/internal/repository"
	"github.com/hostelops/reportgen/internal/service"
	"github.com/hostelops/reportgen/internal/worker"
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

	workerID := cfg.Worker.ID
	if workerID == "" {
		workerID = fmt.Sprintf("worker-%d", time.Now().Unix())
	}

	w := worker.NewWorker(workerID, q, store, svc)
	w.SetPollInterval(time.Duration(cfg.Worker.PollInterval) * time.Millisecond)

	if cfg.Email.APIKey != "" {
		w.SetNotifier(notify.NewNotifier(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress))
	}

	go w.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logrus.Info("shutting down worker")
	w.Stop()
}
