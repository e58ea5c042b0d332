// Package queue provides the Redis-backed transport for report jobs.
// The durable lifecycle record lives in the job store; Redis only
// carries the pending work in FIFO order.
package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hostelops/reportgen/internal/job"
	"github.com/hostelops/reportgen/internal/repository"
)

const (
	jobsKey  = "report_jobs"
	queueKey = "report_job_queue"
)

type Queue struct {
	client *redis.Client
	store  repository.Store
}

func NewQueue(redisAddr string, store repository.Store) (*Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Queue{client: client, store: store}, nil
}

// Enqueue persists the job in the durable store first, then makes it
// visible to workers. The caller gets the job id back immediately.
func (q *Queue) Enqueue(ctx context.Context, j *job.Job) error {
	if q.store != nil {
		if err := q.store.CreateJob(ctx, j); err != nil {
			return fmt.Errorf("failed to persist job: %w", err)
		}
	}

	jobJSON, err := j.ToJSON()
	if err != nil {
		return err
	}

	if err := q.client.HSet(ctx, jobsKey, j.ID, jobJSON).Err(); err != nil {
		return err
	}

	return q.client.ZAdd(ctx, queueKey, redis.Z{
		Score:  float64(j.CreatedAt.UnixMilli()),
		Member: j.ID,
	}).Err()
}

// Dequeue pops the oldest pending job, or nil when the queue is empty.
func (q *Queue) Dequeue(ctx context.Context) (*job.Job, error) {
	results, err := q.client.ZRange(ctx, queueKey, 0, 0).Result()
	if err != nil || len(results) == 0 {
		return nil, err
	}

	jobID := results[0]

	q.client.ZRem(ctx, queueKey, jobID)

	jobJSON, err := q.client.HGet(ctx, jobsKey, jobID).Result()
	if err != nil {
		return nil, err
	}

	return job.FromJSON(jobJSON)
}

// Depth returns the number of jobs waiting to be picked up.
func (q *Queue) Depth(ctx context.Context) (int64, error) {
	return q.client.ZCard(ctx, queueKey).Result()
}

func (q *Queue) Close() error {
	return q.client.Close()
}
