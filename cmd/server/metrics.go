package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/metrics"
	"github.com/hostelops/reportgen/internal/queue"
	"github.com/hostelops/reportgen/internal/repository"
)

func startMetricsCollector(store repository.Store, q *queue.Queue) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		updateJobMetrics(store, q)
	}
}

func updateJobMetrics(store repository.Store, q *queue.Queue) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := store.GetJobStats(ctx)
	if err != nil {
		logrus.WithError(err).Warn("failed to collect job stats")
		return
	}
	metrics.UpdateJobGauges(stats)

	depth, err := q.Depth(ctx)
	if err != nil {
		logrus.WithError(err).Warn("failed to collect queue depth")
		return
	}
	metrics.UpdateQueueDepth(depth)
}
