// Package service orchestrates the report pipeline for both the
// synchronous (request/response) and asynchronous (enqueue) call
// shapes. All boundary validation happens here, before any engine or
// exporter runs.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/export"
	"github.com/hostelops/reportgen/internal/job"
	"github.com/hostelops/reportgen/internal/metrics"
	"github.com/hostelops/reportgen/internal/registry"
	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// Request is the already-authorized, already-parsed input shape.
type Request struct {
	Section     string     `json:"section"`
	RangeType   string     `json:"range_type"`
	Format      string     `json:"format"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	NotifyEmail string     `json:"notify_email,omitempty"`
}

// Enqueuer is the slice of the queue the service needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, j *job.Job) error
}

type Service struct {
	registry  *registry.Registry
	queue     Enqueuer
	outputDir string
	csv       *export.CSVExporter
	preview   *export.PreviewExporter
}

func New(reg *registry.Registry, q Enqueuer, outputDir string) *Service {
	return &Service{
		registry:  reg,
		queue:     q,
		outputDir: outputDir,
		csv:       export.NewCSVExporter(outputDir),
		preview:   export.NewPreviewExporter(),
	}
}

var titles = map[report.Section]string{
	report.SectionGuest:       "Guest Summary Report",
	report.SectionRoom:        "Room Occupancy Report",
	report.SectionVehicle:     "Vehicle & Driver Report",
	report.SectionDriverDuty:  "Driver Duty Report",
	report.SectionFoodService: "Food Service Report",
	report.SectionNetwork:     "Network Allocation Report",
}

type resolved struct {
	section report.Section
	format  export.Format
	code    report.Code
	entry   registry.Entry
	window  timerange.DateRange
}

// resolve validates the whole request at the boundary: section,
// format, range vocabulary, window, and report code.
func (s *Service) resolve(req Request) (*resolved, error) {
	section, err := report.ParseSection(req.Section)
	if err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	rt, err := timerange.Normalize(req.RangeType)
	if err != nil {
		return nil, err
	}

	window, err := timerange.Resolve(rt, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	entry, err := s.registry.Lookup(section)
	if err != nil {
		return nil, err
	}

	code, err := entry.ResolveCode(rt)
	if err != nil {
		return nil, err
	}

	return &resolved{
		section: section,
		format:  format,
		code:    code,
		entry:   entry,
		window:  window,
	}, nil
}

// Generate runs the full pipeline inline and returns the artifact.
func (s *Service) Generate(ctx context.Context, req Request) (*export.Artifact, error) {
	r, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	filter := timerange.DateRangeFilter{Range: r.window}
	return s.run(ctx, r.section, r.code, r.format, r.entry, filter)
}

// Enqueue validates the request, persists a queued job, and returns
// it immediately without blocking on generation.
func (s *Service) Enqueue(ctx context.Context, req Request) (*job.Job, error) {
	r, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	if r.format == export.FormatView {
		return nil, fmt.Errorf("%w: VIEW is synchronous only", export.ErrUnsupportedFormat)
	}

	j := job.New(r.section, r.code, r.format, timerange.DateRangeFilter{Range: r.window})
	j.NotifyEmail = req.NotifyEmail

	if err := s.queue.Enqueue(ctx, j); err != nil {
		return nil, err
	}

	metrics.RecordJobEnqueued(string(r.section), string(r.format))
	logrus.WithFields(logrus.Fields{
		"job_id":  j.ID,
		"section": r.section,
		"code":    r.code,
		"format":  r.format,
	}).Info("report job enqueued")

	return j, nil
}

// GenerateForJob runs the pipeline for a dequeued job. Dispatch goes
// through the same registry as the synchronous path, keyed by the
// section tag carried on the job record.
func (s *Service) GenerateForJob(ctx context.Context, j *job.Job) (*export.Artifact, error) {
	entry, err := s.registry.Lookup(j.Section)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, j.Section, j.Code, j.Format, entry, j.Filter())
}

func (s *Service) run(ctx context.Context, section report.Section, code report.Code, format export.Format, entry registry.Entry, filter timerange.Filter) (*export.Artifact, error) {
	start := time.Now()

	artifact, err := s.execute(ctx, section, code, format, entry, filter)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordReportFailed(string(section), string(format), duration)
		return nil, err
	}

	metrics.RecordReportGenerated(string(section), string(format), duration)
	logrus.WithFields(logrus.Fields{
		"section":  section,
		"code":     code,
		"format":   format,
		"rows":     artifact.TotalRecords,
		"duration": duration,
	}).Info("report generated")

	return artifact, nil
}

func (s *Service) execute(ctx context.Context, section report.Section, code report.Code, format export.Format, entry registry.Entry, filter timerange.Filter) (*export.Artifact, error) {
	ds, err := entry.Engine.Run(ctx, code, filter)
	if err != nil {
		return nil, err
	}

	from, to := timerange.Bounds(filter)
	meta := report.Meta{
		Title:   titles[section],
		Section: section,
		Code:    code,
		From:    from,
		To:      to,
	}

	switch format {
	case export.FormatView:
		return s.preview.Export(ds, meta)
	case export.FormatExcel:
		return entry.Exporter.Export(ds, meta)
	case export.FormatPDF:
		return export.NewPDFExporter(s.outputDir, entry.TemplateDir).Export(ds, meta)
	case export.FormatCSV:
		return s.csv.Export(ds, meta)
	default:
		return nil, fmt.Errorf("%w: %q", export.ErrUnsupportedFormat, format)
	}
}
