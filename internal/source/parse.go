package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"ados/internal"
	"ados/internal/util"
)

// ErrNoData marks a structurally valid source that yielded no rows, so the
// caller can tell "nothing there / wrong format" apart from a fetch failure.
var ErrNoData = errors.New("no data rows found in source")

// ParseTable turns raw tabular text into rows keyed by column label. Google
// Sheets "publish to web" links serve either CSV or an HTML table depending
// on the chosen output, so both are accepted through the same entry point.
func ParseTable(text string) ([]internal.RawRow, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
	if trimmed == "" {
		return nil, ErrNoData
	}

	var (
		rows []internal.RawRow
		err  error
	)
	if looksLikeHTML(trimmed) {
		rows, err = parseHTMLTable(trimmed)
	} else {
		rows, err = parseCSV(trimmed)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// ParseFile reads a local CSV or XLSX file through the same contract.
func ParseFile(path string) ([]internal.RawRow, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xls" {
		return ParseXLSX(blob)
	}
	return ParseTable(string(blob))
}

func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") ||
		strings.Contains(lower, "<table")
}

func parseCSV(text string) ([]internal.RawRow, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoData
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, util.NormalizeSpaces(h))
	}

	out := make([]internal.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if allEmpty(record) {
			continue
		}
		row := internal.RawRow{}
		for i, value := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = strings.TrimSpace(value)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseHTMLTable(html string) ([]internal.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("html parse: %w", err)
	}

	table := doc.Find("table").First()
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, ErrNoData
	}

	headers := []string{}
	rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, util.NormalizeSpaces(cell.Text()))
	})

	out := []internal.RawRow{}
	rows.Slice(1, rows.Length()).Each(func(_ int, tr *goquery.Selection) {
		cells := []string{}
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, util.NormalizeSpaces(cell.Text()))
		})
		if allEmpty(cells) {
			return
		}
		row := internal.RawRow{}
		for i, value := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = value
		}
		out = append(out, row)
	})
	return out, nil
}

// ParseXLSX reads the first sheet of a workbook, first row as labels.
func ParseXLSX(content []byte) ([]internal.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("xlsx parse: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx parse: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoData
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, util.NormalizeSpaces(h))
	}

	out := make([]internal.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if allEmpty(record) {
			continue
		}
		row := internal.RawRow{}
		for i, value := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = strings.TrimSpace(value)
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
