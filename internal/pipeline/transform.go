package pipeline

import (
	"ados/internal"
)

// Column labels as they appear in the registry sheets.
const (
	ColDocumentID   = "Document ID"
	ColType         = "ประเภทเอกสาร"
	ColSubject      = "เรื่อง"
	ColDepartment   = "หน่วยงาน"
	ColReceivedDate = "วันที่รับเอกสาร"
	ColPersonnel    = "รายชื่อบุคลากรที่เกี่ยวข้อง"
	ColEmail        = "email"
	ColDocDate      = "วันที่เอกสาร"
	ColDocNumber    = "เลขที่เอกสาร"
	ColIssuingDept  = "หน่วยงานที่เชิญ/ประกาศ"
	ColEventDate    = "วันเวลาที่จัดงาน"
	ColKeyword      = "keyword"
	ColURL          = "URL"
)

// Transform maps one raw sheet row onto a DocumentRecord. It is total:
// missing columns become empty strings, unparseable dates stay nil and the
// raw date text is carried through for display.
func Transform(row internal.RawRow) internal.DocumentRecord {
	rec := internal.DocumentRecord{
		ID:                row[ColDocumentID],
		Type:              row[ColType],
		Subject:           row[ColSubject],
		Department:        row[ColDepartment],
		ReceivedDateRaw:   row[ColReceivedDate],
		Personnel:         row[ColPersonnel],
		Email:             row[ColEmail],
		DocDateRaw:        row[ColDocDate],
		DocNumber:         row[ColDocNumber],
		IssuingDepartment: row[ColIssuingDept],
		EventDate:         row[ColEventDate],
		Keyword:           row[ColKeyword],
		URL:               row[ColURL],
	}

	if d, ok := ParseThaiDate(rec.ReceivedDateRaw); ok {
		rec.ReceivedDate = &d
	}
	if d, ok := ParseThaiDate(rec.DocDateRaw); ok {
		rec.DocDate = &d
	}
	return rec
}

// TransformRows converts a parsed table into records, preserving row order.
func TransformRows(rows []internal.RawRow) []internal.DocumentRecord {
	out := make([]internal.DocumentRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, Transform(row))
	}
	return out
}
