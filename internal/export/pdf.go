package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/hostelops/reportgen/internal/report"
)

const pdfMIME = "application/pdf"

// A4 portrait in millimetres.
const (
	pageWidth    = 210.0
	marginTop    = 15.0
	marginBottom = 15.0
	marginSide   = 10.0
)

// PDFExporter renders a fixed-size A4 document. A single-day window
// gets a day heading; any wider window gets the range layout with a
// period line.
type PDFExporter struct {
	outputDir   string
	templateDir string
}

func NewPDFExporter(outputDir, templateDir string) *PDFExporter {
	return &PDFExporter{outputDir: outputDir, templateDir: templateDir}
}

func (p *PDFExporter) Export(ds *report.Dataset, meta report.Meta) (*Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", p.templateDir)
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	p.renderHeader(pdf, meta)
	p.renderTable(pdf, ds)
	p.renderSummary(pdf, ds)
	p.renderFooter(pdf)

	if pdf.Err() {
		return nil, &report.RenderError{Format: "pdf", Err: pdf.Error()}
	}

	path, err := outputPath(p.outputDir, meta, "pdf")
	if err != nil {
		return nil, err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}

	return &Artifact{Path: path, MIME: pdfMIME, TotalRecords: len(ds.Rows)}, nil
}

func (p *PDFExporter) renderHeader(pdf *fpdf.Fpdf, meta report.Meta) {
	// Background band behind the heading.
	pdf.SetFillColor(235, 240, 247)
	pdf.Rect(0, 0, pageWidth, 32, "F")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, meta.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if meta.SingleDay() {
		pdf.CellFormat(0, 7, fmt.Sprintf("Daily Report for %s", meta.PeriodLabel()), "", 1, "C", false, 0, "")
	} else {
		pdf.CellFormat(0, 7, "Period: "+meta.PeriodLabel(), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func (p *PDFExporter) renderTable(pdf *fpdf.Fpdf, ds *report.Dataset) {
	colWidth := (pageWidth - 2*marginSide) / float64(len(ds.Columns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(217, 217, 217)
	for _, col := range ds.Columns {
		pdf.CellFormat(colWidth, 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			pdf.CellFormat(colWidth, 7, cellString(row[col]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (p *PDFExporter) renderSummary(pdf *fpdf.Fpdf, ds *report.Dataset) {
	if len(ds.Summary) == 0 {
		return
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 10)
	for _, item := range ds.Summary {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s = %s", item.Label, cellString(item.Value)), "", 1, "L", false, 0, "")
	}
}

func (p *PDFExporter) renderFooter(pdf *fpdf.Fpdf) {
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 10)

	sigWidth := (pageWidth - 2*marginSide) / 3
	for _, sig := range []string{"Prepared By", "Verified By", "Approved By"} {
		pdf.CellFormat(sigWidth, 7, sig+": ____________", "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
