package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ados/internal"
	"ados/internal/config"
	"ados/internal/source"
	"ados/internal/store"
)

func testServer(records []internal.DocumentRecord) *Server {
	cfg := config.Config{
		HTTPAddr:           ":0",
		PageSize:           10,
		TopPersonnel:       10,
		PDFSubjectMaxRunes: 30,
		FetchTimeoutMs:     1000,
		FetchRetries:       1,
	}
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	snapshot := store.New()
	snapshot.Replace(records, "test")
	return New(cfg, lg, snapshot, source.NewLoader(cfg))
}

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func serverRecords() []internal.DocumentRecord {
	out := []internal.DocumentRecord{}
	for i := 0; i < 25; i++ {
		rec := internal.DocumentRecord{
			ID: "DOC", Type: "ประกาศ", Subject: "เรื่องทั่วไป",
			IssuingDepartment: "สำนักหอสมุด", Personnel: "สุดา",
			DocDate: date(2026, 1, 5),
		}
		out = append(out, rec)
	}
	out = append(out, internal.DocumentRecord{
		ID: "DOC-X", Type: "หนังสือเวียน", Subject: "แจ้งแนวปฏิบัติพิเศษ",
		IssuingDepartment: "กองคลัง", Personnel: "ประสิทธิ์",
		DocDate: date(2026, 3, 10),
	})
	return out
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	return rec
}

func TestGetRecordsPagination(t *testing.T) {
	s := testServer(serverRecords())

	rec := get(t, s, "/api/records")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp recordsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 26 || resp.TotalPages != 3 || len(resp.Records) != 10 {
		t.Fatalf("resp total=%d pages=%d len=%d", resp.Total, resp.TotalPages, len(resp.Records))
	}

	rec = get(t, s, "/api/records?page=3")
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Records) != 6 {
		t.Fatalf("last page len=%d", len(resp.Records))
	}
}

func TestGetRecordsFiltered(t *testing.T) {
	s := testServer(serverRecords())
	rec := get(t, s, "/api/records?type="+escape("หนังสือเวียน"))
	var resp recordsResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Records[0].ID != "DOC-X" {
		t.Fatalf("resp=%+v", resp)
	}

	rec = get(t, s, "/api/records?start=2026-02-01")
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Fatalf("date filter total=%d", resp.Total)
	}
}

func TestGetFilters(t *testing.T) {
	s := testServer(serverRecords())
	rec := get(t, s, "/api/filters")
	var resp filtersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Types) != 2 || resp.Types[0] != "ประกาศ" {
		t.Fatalf("types=%v", resp.Types)
	}
	if len(resp.Departments) != 2 {
		t.Fatalf("departments=%v", resp.Departments)
	}
}

func TestGetStats(t *testing.T) {
	s := testServer(serverRecords())
	rec := get(t, s, "/api/stats")
	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary.DocumentCount != 2 || resp.Summary.PersonnelCount != 2 {
		t.Fatalf("summary=%+v", resp.Summary)
	}
	if len(resp.MonthlyHistogram) != 12 {
		t.Fatalf("histogram=%d", len(resp.MonthlyHistogram))
	}
	if len(resp.TopPersonnel) != 2 || resp.TopPersonnel[0].Value != "สุดา" {
		t.Fatalf("topPersonnel=%+v", resp.TopPersonnel)
	}
}

func TestPostLoadFailureKeepsSnapshot(t *testing.T) {
	s := testServer(serverRecords())

	req := httptest.NewRequest(http.MethodPost, "/api/load",
		strings.NewReader(`{"url":"ftp://bad.example/data"}`))
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status=%d", rec.Code)
	}
	if len(s.snapshot.Records()) != 26 {
		t.Fatal("failed load must not touch the snapshot")
	}
}

func TestPostLoadDefault(t *testing.T) {
	s := testServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/load", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var info store.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Source != "default" || info.Count == 0 {
		t.Fatalf("info=%+v", info)
	}
}

func TestExportEndpoints(t *testing.T) {
	s := testServer(serverRecords())

	rec := get(t, s, "/api/export/xlsx")
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("xlsx status=%d len=%d", rec.Code, rec.Body.Len())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "documents.xlsx") {
		t.Fatalf("disposition=%q", got)
	}

	rec = get(t, s, "/api/export/pdf")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("pdf status=%d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(nil)
	if rec := get(t, s, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func escape(v string) string {
	return url.QueryEscape(v)
}
