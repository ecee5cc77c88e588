package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ados/internal"
	"ados/internal/config"
	"ados/internal/pipeline"
	"ados/internal/source"
	"ados/internal/store"
)

//go:embed web
var webFS embed.FS

const dateParam = "2006-01-02"

type Server struct {
	cfg      config.Config
	lg       *slog.Logger
	snapshot *store.Snapshot
	loader   *source.Loader
	http     *http.Server
}

func New(cfg config.Config, lg *slog.Logger, snapshot *store.Snapshot, loader *source.Loader) *Server {
	s := &Server{cfg: cfg, lg: lg, snapshot: snapshot, loader: loader}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.getIndex)
	mux.HandleFunc("/health", s.getHealth)
	mux.HandleFunc("/api/records", s.getRecords)
	mux.HandleFunc("/api/filters", s.getFilters)
	mux.HandleFunc("/api/stats", s.getStats)
	mux.HandleFunc("/api/load", s.postLoad)
	mux.HandleFunc("/api/export/xlsx", s.getExportXLSX)
	mux.HandleFunc("/api/export/pdf", s.getExportPDF)

	s.http = &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	return s
}

func (s *Server) Start() error {
	s.lg.Info("http server starting", "addr", s.cfg.HTTPAddr)
	return s.http.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.lg.Info("http server stopping")
	return s.http.Shutdown(ctx)
}

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, "dashboard page missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// filterSpecFromQuery reads the six filter parameters. Bad date text is
// treated as an inactive predicate rather than an error; the UI sends
// browser-validated values anyway.
func filterSpecFromQuery(r *http.Request) internal.FilterSpec {
	q := r.URL.Query()
	spec := internal.FilterSpec{
		Type:            q.Get("type"),
		IssuingDept:     q.Get("dept"),
		SearchSubject:   q.Get("subject"),
		SearchPersonnel: q.Get("personnel"),
	}
	if v := q.Get("start"); v != "" {
		if t, err := time.Parse(dateParam, v); err == nil {
			spec.StartDate = &t
		}
	}
	if v := q.Get("end"); v != "" {
		if t, err := time.Parse(dateParam, v); err == nil {
			spec.EndDate = &t
		}
	}
	return spec
}

type recordsResponse struct {
	Total      int                       `json:"total"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"pageSize"`
	TotalPages int                       `json:"totalPages"`
	Records    []internal.DocumentRecord `json:"records"`
}

func (s *Server) getRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	filtered := pipeline.Filter(s.snapshot.Records(), filterSpecFromQuery(r))

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "pageSize", s.cfg.PageSize)
	if pageSize < 1 {
		pageSize = s.cfg.PageSize
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	pageRecords := filtered[start:end]
	if pageRecords == nil {
		pageRecords = []internal.DocumentRecord{}
	}
	writeJSON(w, recordsResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Records:    pageRecords,
	})
}

type filtersResponse struct {
	Types       []string `json:"types"`
	Departments []string `json:"departments"`
}

// getFilters derives the selector domains from the unfiltered set.
func (s *Server) getFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	records := s.snapshot.Records()
	writeJSON(w, filtersResponse{
		Types:       pipeline.DistinctValues(records, pipeline.TypeOf),
		Departments: pipeline.DistinctValues(records, pipeline.IssuingDeptOf),
	})
}

type statsResponse struct {
	Summary          internal.Summary       `json:"summary"`
	TopPersonnel     []internal.ValueCount  `json:"topPersonnel"`
	TypeDistribution []internal.ValueCount  `json:"typeDistribution"`
	MonthlyHistogram []internal.MonthBucket `json:"monthlyHistogram"`
	Snapshot         store.Info             `json:"snapshot"`
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	filtered := pipeline.Filter(s.snapshot.Records(), filterSpecFromQuery(r))
	writeJSON(w, statsResponse{
		Summary:          pipeline.Summarize(filtered),
		TopPersonnel:     pipeline.TopN(filtered, pipeline.PersonnelOf, s.cfg.TopPersonnel),
		TypeDistribution: pipeline.CategoryDistribution(filtered, pipeline.TypeOf),
		MonthlyHistogram: pipeline.MonthlyHistogram(filtered),
		Snapshot:         s.snapshot.Info(),
	})
}

type loadRequest struct {
	URL string `json:"url"`
}

// postLoad replaces the snapshot from a remote sheet, or from the bundled
// default when no URL is given. On any failure the prior snapshot stays.
func (s *Server) postLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var (
		records []internal.DocumentRecord
		err     error
		label   string
	)
	if strings.TrimSpace(req.URL) == "" {
		records, err = s.loader.LoadDefault()
		label = "default"
	} else {
		records, err = s.loader.LoadURL(r.Context(), req.URL)
		label = req.URL
	}
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, source.ErrNoData) {
			status = http.StatusUnprocessableEntity
		}
		s.lg.Warn("load failed", "source", label, "error", err)
		writeError(w, status, err)
		return
	}

	s.snapshot.Replace(records, label)
	s.lg.Info("snapshot replaced", "source", label, "records", len(records))
	writeJSON(w, s.snapshot.Info())
}

func (s *Server) getExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	filtered := pipeline.Filter(s.snapshot.Records(), filterSpecFromQuery(r))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)
	if err := pipeline.WriteXLSX(filtered, w); err != nil {
		s.lg.Error("xlsx export failed", "error", err)
	}
}

func (s *Server) getExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	filtered := pipeline.Filter(s.snapshot.Records(), filterSpecFromQuery(r))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.pdf"`)
	if err := pipeline.WritePDF(filtered, s.cfg.PDFSubjectMaxRunes, w); err != nil {
		s.lg.Error("pdf export failed", "error", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
