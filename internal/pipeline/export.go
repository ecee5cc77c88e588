package pipeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ados/internal"
)

const exportSheetName = "Documents"

// Export column headers, fixed order, matching the report layout the
// library staff already use.
var xlsxHeaders = []string{
	"ชื่อเอกสาร", "ประเภท", "เลขที่", "วันที่เอกสาร", "วันที่รับ",
	"บุคลากร", "หน่วยงาน", "URL",
}

// WriteXLSX serializes records into a spreadsheet. Dates are exported as
// their original sheet text: the raw string is authoritative for display.
func WriteXLSX(records []internal.DocumentRecord, w io.Writer) error {
	f := buildWorkbook(records)
	defer f.Close()
	_, err := f.WriteTo(w)
	return err
}

func ExportXLSX(records []internal.DocumentRecord, outputPath string) error {
	f := buildWorkbook(records)
	defer f.Close()
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func buildWorkbook(records []internal.DocumentRecord) *excelize.File {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetName(sheet, exportSheetName)
	sheet = exportSheetName

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, rec.Subject)
		set(2, rec.Type)
		set(3, rec.DocNumber)
		set(4, rec.DocDateRaw)
		set(5, rec.ReceivedDateRaw)
		set(6, rec.Personnel)
		set(7, rec.IssuingDepartment)
		set(8, rec.URL)
	}

	return f
}
