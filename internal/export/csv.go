package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/report"
)

const csvMIME = "text/csv"

// CSVExporter writes one quoted header line followed by one quoted
// line per row. Unlike the Excel and PDF exporters it refuses a
// zero-row dataset.
type CSVExporter struct {
	outputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{outputDir: outputDir}
}

func (c *CSVExporter) Export(ds *report.Dataset, meta report.Meta) (*Artifact, error) {
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s", report.ErrEmptyExport, meta.Code)
	}

	path, err := outputPath(c.outputDir, meta, "csv")
	if err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.WithError(closeErr).Warn("failed to close export file")
		}
	}()

	if _, err := file.WriteString(quotedLine(ds.Columns)); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range ds.Rows {
		values := make([]string, len(ds.Columns))
		for i, col := range ds.Columns {
			values[i] = cellString(row[col])
		}
		if _, err := file.WriteString(quotedLine(values)); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	return &Artifact{Path: path, MIME: csvMIME, TotalRecords: len(ds.Rows)}, nil
}

// quotedLine quotes every value unconditionally, doubling embedded
// quotes per RFC 4180.
func quotedLine(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}
