// Package dashboard exposes the monitoring endpoints for report job
// status, backed by the durable job store rather than the queue.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/hostelops/reportgen/internal/httputil"
	"github.com/hostelops/reportgen/internal/job"
	"github.com/hostelops/reportgen/internal/repository"
)

// Depther reports how many jobs are waiting in the queue.
type Depther interface {
	Depth(ctx context.Context) (int64, error)
}

type Dashboard struct {
	store repository.Store
	queue Depther
}

type Stats struct {
	TotalJobs      int            `json:"total_jobs"`
	QueuedJobs     int            `json:"queued_jobs"`
	ProcessingJobs int            `json:"processing_jobs"`
	CompletedJobs  int            `json:"completed_jobs"`
	FailedJobs     int            `json:"failed_jobs"`
	JobsBySection  map[string]int `json:"jobs_by_section"`
	QueueDepth     int64          `json:"queue_depth"`
	LastUpdated    time.Time      `json:"last_updated"`
}

type JobHistory struct {
	JobID        string     `json:"job_id"`
	Section      string     `json:"section"`
	ReportCode   string     `json:"report_code"`
	Format       string     `json:"format"`
	Status       job.Status `json:"status"`
	FilePath     string     `json:"file_path,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Duration     string     `json:"duration,omitempty"`
}

func NewDashboard(store repository.Store, queue Depther) *Dashboard {
	return &Dashboard{store: store, queue: queue}
}

func (d *Dashboard) GetStats(w http.ResponseWriter, r *http.Request) {
	rows, err := d.store.GetJobStats(r.Context())
	if err != nil {
		httputil.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats := Stats{
		JobsBySection: make(map[string]int),
		LastUpdated:   time.Now(),
	}

	for _, row := range rows {
		stats.TotalJobs += row.Count

		switch job.Status(row.Status) {
		case job.StatusQueued:
			stats.QueuedJobs += row.Count
		case job.StatusProcessing:
			stats.ProcessingJobs += row.Count
		case job.StatusCompleted:
			stats.CompletedJobs += row.Count
		case job.StatusFailed:
			stats.FailedJobs += row.Count
		}

		stats.JobsBySection[row.Section] += row.Count
	}

	if d.queue != nil {
		depth, err := d.queue.Depth(r.Context())
		if err == nil {
			stats.QueueDepth = depth
		}
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (d *Dashboard) GetRecentJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := d.store.GetRecentJobs(r.Context(), 50)
	if err != nil {
		httputil.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	history := []JobHistory{}
	for _, j := range jobs {
		entry := JobHistory{
			JobID:        j.ID,
			Section:      string(j.Section),
			ReportCode:   string(j.Code),
			Format:       string(j.Format),
			Status:       j.Status,
			FilePath:     j.FilePath,
			ErrorMessage: j.ErrorMessage,
			CreatedAt:    j.CreatedAt,
			CompletedAt:  j.CompletedAt,
		}
		if j.CompletedAt != nil {
			entry.Duration = j.CompletedAt.Sub(j.CreatedAt).Round(time.Millisecond).String()
		}
		history = append(history, entry)
	}

	httputil.WriteJSON(w, http.StatusOK, history)
}
