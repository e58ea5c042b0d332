package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hostelops/reportgen/internal/job"
)

// MockJobStore is an in-memory Store used by worker, queue, and API
// tests. It enforces the same forward-only transitions as the SQL
// store and records every call.
type MockJobStore struct {
	mu                  sync.Mutex
	Jobs                map[string]*job.Job
	CreateJobCalls      []string
	MarkProcessingCalls []string
	MarkCompletedCalls  []MarkCompletedCall
	MarkFailedCalls     []MarkFailedCall
	CreateJobError      error
	GetJobError         error
	MarkProcessingError error
	MarkCompletedError  error
	MarkFailedError     error
	RecentJobs          []job.Job
	Stats               []JobStats
}

type MarkCompletedCall struct {
	JobID    string
	FilePath string
}

type MarkFailedCall struct {
	JobID        string
	ErrorMessage string
}

func NewMockJobStore() *MockJobStore {
	return &MockJobStore{
		Jobs: make(map[string]*job.Job),
	}
}

func (m *MockJobStore) CreateJob(_ context.Context, j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateJobCalls = append(m.CreateJobCalls, j.ID)
	if m.CreateJobError != nil {
		return m.CreateJobError
	}

	jobCopy := *j
	m.Jobs[j.ID] = &jobCopy
	return nil
}

func (m *MockJobStore) GetJob(_ context.Context, jobID string) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetJobError != nil {
		return nil, m.GetJobError
	}

	j, exists := m.Jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	jobCopy := *j
	return &jobCopy, nil
}

func (m *MockJobStore) MarkProcessing(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MarkProcessingCalls = append(m.MarkProcessingCalls, jobID)
	if m.MarkProcessingError != nil {
		return m.MarkProcessingError
	}

	return m.transition(jobID, job.StatusProcessing, func(*job.Job) {})
}

func (m *MockJobStore) MarkCompleted(_ context.Context, jobID string, filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MarkCompletedCalls = append(m.MarkCompletedCalls, MarkCompletedCall{JobID: jobID, FilePath: filePath})
	if m.MarkCompletedError != nil {
		return m.MarkCompletedError
	}

	return m.transition(jobID, job.StatusCompleted, func(j *job.Job) {
		j.FilePath = filePath
		now := time.Now()
		j.CompletedAt = &now
	})
}

func (m *MockJobStore) MarkFailed(_ context.Context, jobID string, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MarkFailedCalls = append(m.MarkFailedCalls, MarkFailedCall{JobID: jobID, ErrorMessage: errorMessage})
	if m.MarkFailedError != nil {
		return m.MarkFailedError
	}

	return m.transition(jobID, job.StatusFailed, func(j *job.Job) {
		j.ErrorMessage = errorMessage
		now := time.Now()
		j.CompletedAt = &now
	})
}

func (m *MockJobStore) transition(jobID string, next job.Status, apply func(*job.Job)) error {
	j, exists := m.Jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if !j.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: job %s", ErrIllegalTransition, jobID)
	}

	j.Status = next
	apply(j)
	return nil
}

func (m *MockJobStore) GetRecentJobs(_ context.Context, limit int) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit > len(m.RecentJobs) {
		limit = len(m.RecentJobs)
	}
	return m.RecentJobs[:limit], nil
}

func (m *MockJobStore) GetJobStats(_ context.Context) ([]JobStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Stats, nil
}

// JobStatus is a test helper returning the stored status for a job.
func (m *MockJobStore) JobStatus(jobID string) (job.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, exists := m.Jobs[jobID]
	if !exists {
		return "", false
	}
	return j.Status, true
}
