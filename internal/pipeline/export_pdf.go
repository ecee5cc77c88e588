package pipeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"ados/internal"
	"ados/internal/util"
)

// PDF table layout over the same record subset as the spreadsheet export.
// The built-in core fonts carry no Thai glyphs, so Thai cell text degrades
// to substitution characters; the XLSX export keeps the data intact.
// TODO: register a bundled Thai TTF via pdf.AddUTF8Font once one is vendored.
var pdfColumns = []struct {
	title string
	width float64
}{
	{"ID", 25},
	{"Type", 25},
	{"Date", 25},
	{"Subject", 70},
	{"Personnel", 45},
}

// WritePDF renders records as a tabular PDF report. Subjects are truncated
// to subjectMax runes to keep rows on one line.
func WritePDF(records []internal.DocumentRecord, subjectMax int, w io.Writer) error {
	pdf := buildPDF(records, subjectMax)
	return pdf.Output(w)
}

func ExportPDF(records []internal.DocumentRecord, subjectMax int, outputPath string) error {
	pdf := buildPDF(records, subjectMax)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outputPath)
}

func buildPDF(records []internal.DocumentRecord, subjectMax int) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range records {
		cells := []string{
			rec.DocNumber,
			rec.Type,
			rec.DocDateRaw,
			truncated(rec.Subject, subjectMax),
			rec.Personnel,
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf
}

func truncated(s string, max int) string {
	if max <= 0 {
		return s
	}
	return util.TruncateRunes(s, max)
}
