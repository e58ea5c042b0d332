// Package worker provides the background processor that consumes
// report jobs from the queue and drives them through the status
// machine: processing is recorded before any work starts, and every
// dequeued job ends in exactly one terminal state.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/export"
	"github.com/hostelops/reportgen/internal/job"
	"github.com/hostelops/reportgen/internal/notify"
	"github.com/hostelops/reportgen/internal/queue"
	"github.com/hostelops/reportgen/internal/repository"
)

// Runner generates the artifact for a dequeued job.
type Runner interface {
	GenerateForJob(ctx context.Context, j *job.Job) (*export.Artifact, error)
}

type Worker struct {
	id           string
	queue        *queue.Queue
	store        repository.Store
	runner       Runner
	notifier     *notify.Notifier
	stop         chan bool
	pollInterval time.Duration
}

func NewWorker(id string, q *queue.Queue, store repository.Store, runner Runner) *Worker {
	return &Worker{
		id:           id,
		queue:        q,
		store:        store,
		runner:       runner,
		stop:         make(chan bool),
		pollInterval: time.Second,
	}
}

// SetNotifier enables completion emails. Without one the worker runs
// silently.
func (w *Worker) SetNotifier(n *notify.Notifier) {
	w.notifier = n
}

func (w *Worker) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

func (w *Worker) Start() {
	logrus.WithField("worker", w.id).Info("worker started")

	for {
		select {
		case <-w.stop:
			logrus.WithField("worker", w.id).Info("worker stopped")
			return
		default:
			j, err := w.queue.Dequeue(context.Background())
			if err != nil || j == nil {
				time.Sleep(w.pollInterval)
				continue
			}

			w.processJob(j)
		}
	}
}

// processJob runs one job to a terminal state. There are no retries:
// a failed report is recorded as FAILED and the caller re-submits.
func (w *Worker) processJob(j *job.Job) {
	ctx := context.Background()

	log := logrus.WithFields(logrus.Fields{
		"worker":  w.id,
		"job_id":  j.ID,
		"section": j.Section,
		"code":    j.Code,
		"format":  j.Format,
	})
	log.Info("processing report job")

	if err := w.store.MarkProcessing(ctx, j.ID); err != nil {
		// Another worker already claimed it, or the record is gone.
		log.WithError(err).Warn("skipping job, could not mark processing")
		return
	}
	j.Status = job.StatusProcessing

	artifact, err := w.runner.GenerateForJob(ctx, j)
	if err != nil {
		w.fail(ctx, j, err, log)
		return
	}

	if err := w.store.MarkCompleted(ctx, j.ID, artifact.Path); err != nil {
		log.WithError(err).Error("failed to record job completion")
		return
	}
	j.Status = job.StatusCompleted
	j.FilePath = artifact.Path

	log.WithFields(logrus.Fields{
		"file": artifact.Path,
		"rows": artifact.TotalRecords,
	}).Info("report job completed")

	w.notify(j, log)
}

func (w *Worker) fail(ctx context.Context, j *job.Job, cause error, log *logrus.Entry) {
	log.WithError(cause).Error("report job failed")

	if err := w.store.MarkFailed(ctx, j.ID, cause.Error()); err != nil {
		log.WithError(err).Error("failed to record job failure")
		return
	}
	j.Status = job.StatusFailed
	j.ErrorMessage = cause.Error()

	w.notify(j, log)
}

func (w *Worker) notify(j *job.Job, log *logrus.Entry) {
	if w.notifier == nil || !w.notifier.Enabled() || j.NotifyEmail == "" {
		return
	}

	var err error
	switch j.Status {
	case job.StatusCompleted:
		err = w.notifier.NotifyCompleted(j)
	case job.StatusFailed:
		err = w.notifier.NotifyFailed(j)
	}
	if err != nil {
		log.WithError(err).Warn("failed to send job notification")
	}
}

func (w *Worker) Stop() {
	w.stop <- true
}

// Drain processes everything currently queued and returns. Used by
// tests and one-shot invocations.
func (w *Worker) Drain(ctx context.Context) error {
	for {
		j, err := w.queue.Dequeue(ctx)
		if err != nil {
			return err
		}
		if j == nil {
			return nil
		}
		w.processJob(j)
	}
}
