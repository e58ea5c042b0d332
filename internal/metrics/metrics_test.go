package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/hostelops/reportgen/internal/repository"
)

func TestRecordReportGenerated(t *testing.T) {
	before := testutil.ToFloat64(ReportsGenerated.WithLabelValues("guest", "EXCEL"))

	RecordReportGenerated("guest", "EXCEL", 250*time.Millisecond)

	after := testutil.ToFloat64(ReportsGenerated.WithLabelValues("guest", "EXCEL"))
	assert.Equal(t, before+1, after)
}

func TestRecordReportFailed(t *testing.T) {
	before := testutil.ToFloat64(ReportFailures.WithLabelValues("room", "PDF"))

	RecordReportFailed("room", "PDF", time.Second)

	after := testutil.ToFloat64(ReportFailures.WithLabelValues("room", "PDF"))
	assert.Equal(t, before+1, after)
}

func TestRecordJobEnqueued(t *testing.T) {
	before := testutil.ToFloat64(JobsEnqueued.WithLabelValues("network", "CSV"))

	RecordJobEnqueued("network", "CSV")

	after := testutil.ToFloat64(JobsEnqueued.WithLabelValues("network", "CSV"))
	assert.Equal(t, before+1, after)
}

func TestUpdateJobGauges(t *testing.T) {
	UpdateJobGauges([]repository.JobStats{
		{Section: "guest", Status: "completed", Count: 7},
		{Section: "guest", Status: "failed", Count: 2},
	})

	assert.Equal(t, 7.0, testutil.ToFloat64(JobsByStatus.WithLabelValues("completed", "guest")))
	assert.Equal(t, 2.0, testutil.ToFloat64(JobsByStatus.WithLabelValues("failed", "guest")))

	// A fresh update replaces previous gauge values.
	UpdateJobGauges([]repository.JobStats{
		{Section: "guest", Status: "completed", Count: 9},
	})

	assert.Equal(t, 9.0, testutil.ToFloat64(JobsByStatus.WithLabelValues("completed", "guest")))
	assert.Equal(t, 0.0, testutil.ToFloat64(JobsByStatus.WithLabelValues("failed", "guest")))
}

func TestUpdateQueueDepth(t *testing.T) {
	UpdateQueueDepth(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(QueueDepth))
}
