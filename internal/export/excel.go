package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hostelops/reportgen/internal/report"
)

const excelMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExcelExporter writes a styled workbook: merged header band, shaded
// table header, typed data rows, summary block, and signature footer.
// A zero-row dataset still produces a valid header-only sheet.
type ExcelExporter struct {
	outputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{outputDir: outputDir}
}

func (x *ExcelExporter) Export(ds *report.Dataset, meta report.Meta) (*Artifact, error) {
	const sheet = "Report"

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	if err := x.render(f, sheet, ds, meta); err != nil {
		return nil, &report.RenderError{Format: "excel", Err: err}
	}

	path, err := outputPath(x.outputDir, meta, "xlsx")
	if err != nil {
		return nil, err
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &Artifact{Path: path, MIME: excelMIME, TotalRecords: len(ds.Rows)}, nil
}

func (x *ExcelExporter) render(f *excelize.File, sheet string, ds *report.Dataset, meta report.Meta) error {
	lastCol, err := excelize.ColumnNumberToName(len(ds.Columns))
	if err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	bandStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	// Header band: title, section subtitle, period label.
	for row, text := range []string{meta.Title, fmt.Sprintf("Section: %s", meta.Section), "Period: " + meta.PeriodLabel()} {
		cell := fmt.Sprintf("A%d", row+1)
		if err := f.MergeCell(sheet, cell, fmt.Sprintf("%s%d", lastCol, row+1)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"3", bandStyle); err != nil {
		return err
	}

	// Table header.
	const headerRow = 5
	for i, col := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet,
		fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle); err != nil {
		return err
	}

	// Data rows.
	for r, row := range ds.Rows {
		for c, col := range ds.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellString(row[col])); err != nil {
				return err
			}
		}
	}

	// Summary block.
	summaryRow := headerRow + len(ds.Rows) + 2
	for i, item := range ds.Summary {
		labelCell := fmt.Sprintf("A%d", summaryRow+i)
		if err := f.SetCellValue(sheet, labelCell, fmt.Sprintf("%s = %s", item.Label, cellString(item.Value))); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, boldStyle); err != nil {
			return err
		}
	}

	// Signature footer.
	footerRow := summaryRow + len(ds.Summary) + 3
	for i, sig := range []string{"Prepared By", "Verified By", "Approved By"} {
		cell, err := excelize.CoordinatesToCellName(i*2+1, footerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, sig+": ____________"); err != nil {
			return err
		}
	}

	return nil
}
