package export

import "github.com/hostelops/reportgen/internal/report"

// PreviewExporter returns rows and a total count verbatim. No file
// I/O; used for format VIEW.
type PreviewExporter struct{}

func NewPreviewExporter() *PreviewExporter {
	return &PreviewExporter{}
}

func (p *PreviewExporter) Export(ds *report.Dataset, _ report.Meta) (*Artifact, error) {
	rows := ds.Rows
	if rows == nil {
		rows = []report.Row{}
	}
	return &Artifact{Rows: rows, TotalRecords: len(rows)}, nil
}
