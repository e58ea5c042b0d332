package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelops/reportgen/internal/repository"
)

type fakeDepther struct {
	depth int64
	err   error
}

func (f *fakeDepther) Depth(context.Context) (int64, error) {
	return f.depth, f.err
}

func TestGetStats_IncludesQueueDepth(t *testing.T) {
	store := repository.NewMockJobStore()
	store.Stats = []repository.JobStats{
		{Section: "guest", Status: "queued", Count: 3},
	}

	d := NewDashboard(store, &fakeDepther{depth: 3})

	w := httptest.NewRecorder()
	d.GetStats(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.QueueDepth)
	assert.Equal(t, 3, stats.QueuedJobs)
}

func TestGetStats_ToleratesDepthFailure(t *testing.T) {
	store := repository.NewMockJobStore()
	d := NewDashboard(store, &fakeDepther{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	d.GetStats(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.QueueDepth)
}

func TestGetRecentJobs_EmptyIsArray(t *testing.T) {
	store := repository.NewMockJobStore()
	d := NewDashboard(store, nil)

	w := httptest.NewRecorder()
	d.GetRecentJobs(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/history", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
