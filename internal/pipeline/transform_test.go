package pipeline

import (
	"testing"

	"ados/internal"
)

func TestTransform(t *testing.T) {
	row := internal.RawRow{
		ColDocumentID:   "DOC-001",
		ColType:         "หนังสือเชิญประชุม",
		ColSubject:      "ขอเชิญประชุมคณะกรรมการ",
		ColDepartment:   "สำนักหอสมุด",
		ColReceivedDate: "23/1/2569",
		ColPersonnel:    "นางสาวสุดา วงศ์คำ",
		ColEmail:        "suda.w@kku.ac.th",
		ColDocDate:      "25 มีนาคม 2568",
		ColDocNumber:    "อว 660301.6/ว 45",
		ColIssuingDept:  "สำนักงานอธิการบดี",
		ColEventDate:    "26 มกราคม 2569 เวลา 09.30 น.",
		ColKeyword:      "ประชุม",
		ColURL:          "https://docs.kku.ac.th/doc/001",
	}

	rec := Transform(row)
	if rec.ID != "DOC-001" || rec.Type != "หนังสือเชิญประชุม" || rec.IssuingDepartment != "สำนักงานอธิการบดี" {
		t.Fatalf("unexpected passthrough fields: %+v", rec)
	}
	if rec.ReceivedDate == nil || rec.ReceivedDate.Format("2006-01-02") != "2026-01-23" {
		t.Fatalf("receivedDate=%v", rec.ReceivedDate)
	}
	if rec.DocDate == nil || rec.DocDate.Format("2006-01-02") != "2025-03-25" {
		t.Fatalf("docDate=%v", rec.DocDate)
	}
	if rec.DocDateRaw != "25 มีนาคม 2568" || rec.ReceivedDateRaw != "23/1/2569" {
		t.Fatalf("raw date text not kept: %+v", rec)
	}
}

func TestTransformMissingColumns(t *testing.T) {
	rec := Transform(internal.RawRow{ColSubject: "เรื่องเดียว"})
	if rec.Subject != "เรื่องเดียว" {
		t.Fatalf("subject=%q", rec.Subject)
	}
	if rec.ID != "" || rec.Type != "" || rec.Personnel != "" || rec.URL != "" {
		t.Fatalf("missing columns must be empty: %+v", rec)
	}
	if rec.DocDate != nil || rec.ReceivedDate != nil {
		t.Fatalf("missing dates must stay nil: %+v", rec)
	}
}

func TestTransformUnparseableDateKeepsRaw(t *testing.T) {
	rec := Transform(internal.RawRow{ColDocDate: "ไม่ระบุ"})
	if rec.DocDate != nil {
		t.Fatalf("docDate=%v", rec.DocDate)
	}
	if rec.DocDateRaw != "ไม่ระบุ" {
		t.Fatalf("docDateRaw=%q", rec.DocDateRaw)
	}
}
