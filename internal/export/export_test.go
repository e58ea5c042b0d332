package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hostelops/reportgen/internal/report"
)

func sampleDataset() *report.Dataset {
	return &report.Dataset{
		Columns: []string{"Guest Name", "Room", "Check In", "Check Out", "Stay Days"},
		Rows: []report.Row{
			{
				"Guest Name": "Ahmed Khan",
				"Room":       "A-101",
				"Check In":   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				"Check Out":  time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
				"Stay Days":  3,
			},
			{
				"Guest Name": "Bilal Raza",
				"Room":       "A-102",
				"Check In":   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
				"Check Out":  nil,
				"Stay Days":  nil,
			},
		},
		Summary: []report.SummaryItem{
			{Label: "Total Guests", Value: 2},
			{Label: "Total Guest-Days", Value: 3},
		},
	}
}

func sampleMeta() report.Meta {
	return report.Meta{
		Title:   "Guest Summary Report",
		Section: report.SectionGuest,
		Code:    report.GuestMonthlySummary,
		From:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input       string
		expected    Format
		expectError bool
	}{
		{input: "EXCEL", expected: FormatExcel},
		{input: "excel", expected: FormatExcel},
		{input: "pdf", expected: FormatPDF},
		{input: "CSV", expected: FormatCSV},
		{input: " view ", expected: FormatView},
		{input: "docx", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: ""},
		{name: "date", value: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), expected: "05-Jan-2025"},
		{name: "true", value: true, expected: "Yes"},
		{name: "false", value: false, expected: "No"},
		{name: "string", value: "A-101", expected: "A-101"},
		{name: "int", value: 42, expected: "42"},
		{name: "float", value: 83.5, expected: "83.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cellString(tt.value))
		})
	}
}

func TestExcelExporter_Export(t *testing.T) {
	dir := t.TempDir()
	x := NewExcelExporter(dir)

	artifact, err := x.Export(sampleDataset(), sampleMeta())
	require.NoError(t, err)
	require.NotEmpty(t, artifact.Path)
	assert.Equal(t, excelMIME, artifact.MIME)
	assert.Equal(t, 2, artifact.TotalRecords)

	f, err := excelize.OpenFile(artifact.Path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Guest Summary Report", title)

	period, err := f.GetCellValue("Report", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Period: 01-Jan-2025 – 31-Jan-2025", period)

	header, err := f.GetCellValue("Report", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Guest Name", header)

	first, err := f.GetCellValue("Report", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Khan", first)

	checkIn, err := f.GetCellValue("Report", "C6")
	require.NoError(t, err)
	assert.Equal(t, "10-Jan-2025", checkIn)

	// Summary block sits two rows below the last data row.
	summary, err := f.GetCellValue("Report", "A9")
	require.NoError(t, err)
	assert.Equal(t, "Total Guests = 2", summary)
}

func TestExcelExporter_EmptyDatasetSucceeds(t *testing.T) {
	dir := t.TempDir()
	x := NewExcelExporter(dir)

	ds := &report.Dataset{Columns: []string{"Guest Name", "Room"}}
	artifact, err := x.Export(ds, sampleMeta())

	require.NoError(t, err)
	assert.Equal(t, 0, artifact.TotalRecords)
	assert.FileExists(t, artifact.Path)
}

func TestPDFExporter_Export(t *testing.T) {
	dir := t.TempDir()
	p := NewPDFExporter(dir, "")

	artifact, err := p.Export(sampleDataset(), sampleMeta())
	require.NoError(t, err)
	assert.Equal(t, pdfMIME, artifact.MIME)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestPDFExporter_SingleDayLayout(t *testing.T) {
	dir := t.TempDir()
	p := NewPDFExporter(dir, "")

	meta := sampleMeta()
	meta.From = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	meta.To = meta.From

	artifact, err := p.Export(sampleDataset(), meta)
	require.NoError(t, err)
	assert.FileExists(t, artifact.Path)
}

func TestCSVExporter_Export(t *testing.T) {
	dir := t.TempDir()
	c := NewCSVExporter(dir)

	artifact, err := c.Export(sampleDataset(), sampleMeta())
	require.NoError(t, err)
	assert.Equal(t, csvMIME, artifact.MIME)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Guest Name","Room","Check In","Check Out","Stay Days"`, lines[0])
	assert.Equal(t, `"Ahmed Khan","A-101","10-Jan-2025","13-Jan-2025","3"`, lines[1])
	assert.Equal(t, `"Bilal Raza","A-102","12-Jan-2025","",""`, lines[2])
}

func TestCSVExporter_EmptyDatasetFails(t *testing.T) {
	dir := t.TempDir()
	c := NewCSVExporter(dir)

	ds := &report.Dataset{Columns: []string{"Guest Name"}}
	_, err := c.Export(ds, sampleMeta())

	assert.ErrorIs(t, err, report.ErrEmptyExport)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no partial file should be left behind")
}

func TestPreviewExporter_Export(t *testing.T) {
	p := NewPreviewExporter()

	artifact, err := p.Export(sampleDataset(), sampleMeta())
	require.NoError(t, err)

	assert.Empty(t, artifact.Path)
	assert.Len(t, artifact.Rows, 2)
	assert.Equal(t, 2, artifact.TotalRecords)
}

func TestPreviewExporter_EmptyDataset(t *testing.T) {
	p := NewPreviewExporter()

	artifact, err := p.Export(&report.Dataset{Columns: []string{"Room"}}, sampleMeta())
	require.NoError(t, err)

	assert.NotNil(t, artifact.Rows)
	assert.Equal(t, 0, artifact.TotalRecords)
}

func TestOutputPath_UniquePerInvocation(t *testing.T) {
	dir := t.TempDir()
	meta := sampleMeta()

	first, err := outputPath(dir, meta, "csv")
	require.NoError(t, err)
	second, err := outputPath(dir, meta, "csv")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
