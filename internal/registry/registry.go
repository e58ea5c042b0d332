// Package registry binds each business section to its code resolver,
// query engine, default exporter, and template folder. The table is
// built once at process start and passed by reference; it is never
// mutated afterwards.
package registry

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/hostelops/reportgen/internal/engine"
	"github.com/hostelops/reportgen/internal/export"
	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

// Entry is one section's binding.
type Entry struct {
	ResolveCode func(rt timerange.RangeType) (report.Code, error)
	Engine      engine.Engine
	Exporter    export.Exporter
	TemplateDir string
}

type Registry struct {
	entries map[report.Section]Entry
}

// New assembles the full dispatch table. Every known section gets an
// entry; the default exporter for each section is the spreadsheet one.
func New(db *sql.DB, outputDir, templateRoot string) *Registry {
	excel := export.NewExcelExporter(outputDir)

	engines := map[report.Section]engine.Engine{
		report.SectionGuest:       engine.NewGuestEngine(db),
		report.SectionRoom:        engine.NewRoomEngine(db),
		report.SectionVehicle:     engine.NewVehicleEngine(db),
		report.SectionDriverDuty:  engine.NewDutyEngine(db),
		report.SectionFoodService: engine.NewFoodEngine(db),
		report.SectionNetwork:     engine.NewNetworkEngine(db),
	}

	entries := make(map[report.Section]Entry, len(engines))
	for section, eng := range engines {
		section := section
		entries[section] = Entry{
			ResolveCode: func(rt timerange.RangeType) (report.Code, error) {
				return report.ResolveCode(section, rt)
			},
			Engine:      eng,
			Exporter:    excel,
			TemplateDir: filepath.Join(templateRoot, string(section)),
		}
	}

	return &Registry{entries: entries}
}

// Lookup is an exact match over the section key.
func (r *Registry) Lookup(section report.Section) (Entry, error) {
	entry, ok := r.entries[section]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", report.ErrUnknownSection, section)
	}
	return entry, nil
}

// Sections lists the registered sections.
func (r *Registry) Sections() []report.Section {
	return report.Sections()
}
