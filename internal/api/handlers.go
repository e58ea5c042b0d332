// Package api wires the HTTP surface: synchronous report generation,
// job submission and lookup, and the dashboard endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/dashboard"
	"github.com/hostelops/reportgen/internal/export"
	"github.com/hostelops/reportgen/internal/httputil"
	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/repository"
	"github.com/hostelops/reportgen/internal/service"
	"github.com/hostelops/reportgen/internal/timerange"
)

const dateLayout = "2006-01-02"

type API struct {
	service *service.Service
	store   repository.Store
	mux     *http.ServeMux
}

// GenerateRequest is the external JSON shape. Dates are plain
// yyyy-mm-dd strings and only meaningful for the custom range.
type GenerateRequest struct {
	Section     string `json:"section"`
	RangeType   string `json:"range_type"`
	Format      string `json:"format"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	NotifyEmail string `json:"notify_email,omitempty"`
}

func NewAPI(svc *service.Service, store repository.Store, dash *dashboard.Dashboard) *API {
	api := &API{
		service: svc,
		store:   store,
		mux:     http.NewServeMux(),
	}

	api.mux.HandleFunc("/api/reports", api.handleReports)
	api.mux.HandleFunc("/api/jobs", api.handleJobs)
	api.mux.HandleFunc("/api/jobs/", api.handleJobByID)
	api.mux.HandleFunc("/api/sections", api.handleSections)

	if dash != nil {
		api.mux.HandleFunc("/api/dashboard/stats", dash.GetStats)
		api.mux.HandleFunc("/api/dashboard/history", dash.GetRecentJobs)
	}

	return api
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *API) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := a.decodeRequest(w, r)
	if !ok {
		return
	}

	artifact, err := a.service.Generate(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, artifact)
}

func (a *API) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := a.decodeRequest(w, r)
	if !ok {
		return
	}

	j, err := a.service.Enqueue(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, j)
}

func (a *API) handleJobByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if jobID == "" {
		httputil.WriteJSONError(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	j, err := a.store.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			httputil.WriteJSONError(w, "Job not found", http.StatusNotFound)
			return
		}
		httputil.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, j)
}

func (a *API) handleSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report.Sections())
}

func (a *API) decodeRequest(w http.ResponseWriter, r *http.Request) (service.Request, bool) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close request body")
		}
	}()

	var ext GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&ext); err != nil {
		httputil.WriteJSONError(w, "Invalid JSON", http.StatusBadRequest)
		return service.Request{}, false
	}

	if ext.Section == "" {
		httputil.WriteJSONError(w, "Section is required", http.StatusBadRequest)
		return service.Request{}, false
	}

	req := service.Request{
		Section:     ext.Section,
		RangeType:   ext.RangeType,
		Format:      ext.Format,
		NotifyEmail: ext.NotifyEmail,
	}

	var ok bool
	if req.StartDate, ok = parseDate(w, "start_date", ext.StartDate); !ok {
		return service.Request{}, false
	}
	if req.EndDate, ok = parseDate(w, "end_date", ext.EndDate); !ok {
		return service.Request{}, false
	}

	return req, true
}

func parseDate(w http.ResponseWriter, field, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		httputil.WriteJSONError(w, "Invalid "+field+", expected yyyy-mm-dd", http.StatusBadRequest)
		return nil, false
	}
	return &t, true
}

// writeServiceError maps pipeline errors onto HTTP statuses: bad
// input is 400, everything downstream of validation is 500.
func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrUnknownSection),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, timerange.ErrUnsupportedRangeType),
		errors.Is(err, timerange.ErrMissingCustomRange):
		httputil.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, report.ErrEmptyExport):
		httputil.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		httputil.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}
