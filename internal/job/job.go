// Package job defines the durable report-generation job model shared
// by the queue, store, and worker.
package job

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hostelops/reportgen/internal/export"
	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// CanTransitionTo reports whether a forward transition is legal. The
// lifecycle only ever moves queued -> processing -> completed|failed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusQueued:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one asynchronous report-generation request. The section tag
// is carried explicitly so the worker dispatches through the same
// registry as the synchronous path.
type Job struct {
	ID           string         `json:"id"`
	Section      report.Section `json:"section"`
	Code         report.Code    `json:"report_code"`
	Format       export.Format  `json:"format"`
	From         *time.Time     `json:"from_date,omitempty"`
	To           *time.Time     `json:"to_date,omitempty"`
	NotifyEmail  string         `json:"notify_email,omitempty"`
	Status       Status         `json:"status"`
	FilePath     string         `json:"file_path,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

func New(section report.Section, code report.Code, format export.Format, filter timerange.Filter) *Job {
	j := &Job{
		ID:        uuid.New().String(),
		Section:   section,
		Code:      code,
		Format:    format,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	}

	if f, ok := filter.(timerange.DateRangeFilter); ok {
		from, to := f.Range.From, f.Range.To
		j.From, j.To = &from, &to
	}

	return j
}

// Filter reconstructs the window filter persisted on the job.
func (j *Job) Filter() timerange.Filter {
	if j.From == nil || j.To == nil {
		return timerange.NoFilter{}
	}
	return timerange.DateRangeFilter{
		Range: timerange.DateRange{From: *j.From, To: *j.To},
	}
}

func (j *Job) ToJSON() (string, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func FromJSON(data string) (*Job, error) {
	var j Job
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return nil, err
	}
	return &j, nil
}
