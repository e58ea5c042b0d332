// Package export renders datasets into downloadable artifacts. One
// exporter per output format: Excel workbook, PDF document, delimited
// text, and an in-memory preview.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hostelops/reportgen/internal/report"
)

type Format string

const (
	FormatExcel Format = "EXCEL"
	FormatPDF   Format = "PDF"
	FormatCSV   Format = "CSV"
	FormatView  Format = "VIEW"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat validates a raw format string from the boundary.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToUpper(strings.TrimSpace(raw))) {
	case FormatExcel:
		return FormatExcel, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatView:
		return FormatView, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// Artifact is either a file reference (Path + MIME set) or an
// in-memory preview (Rows + TotalRecords set).
type Artifact struct {
	Path         string       `json:"path,omitempty"`
	MIME         string       `json:"mime,omitempty"`
	Rows         []report.Row `json:"rows,omitempty"`
	TotalRecords int          `json:"total_records"`
}

// Exporter renders a dataset plus its metadata into an artifact.
type Exporter interface {
	Export(ds *report.Dataset, meta report.Meta) (*Artifact, error)
}

// outputPath builds a collision-free file path for one export. The
// uuid fragment keeps concurrent exports of the same code apart.
func outputPath(dir string, meta report.Meta, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s_%s_%s.%s",
		meta.Section, strings.ToLower(string(meta.Code)), timestamp, uuid.NewString()[:8], ext)

	return filepath.Join(dir, name), nil
}

const dateLayout = "02-Jan-2006"

// cellString renders a scalar the way report cells show it: dates as
// dd-mmm-yyyy, nils as empty, booleans as Yes/No.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(dateLayout)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
