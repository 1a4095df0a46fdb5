package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mwiater/capdash/internal/benchmarks"
	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/figure"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/mwiater/capdash/internal/render"
	"github.com/mwiater/capdash/internal/store"
	"github.com/mwiater/capdash/internal/summary"
	"github.com/mwiater/capdash/internal/tabular"
)

// OverviewResponse carries the page-load counts.
type OverviewResponse struct {
	OK      bool                   `json:"ok"`
	Summary summary.DatasetSummary `json:"summary"`
	Table   tabular.TableSummary   `json:"table"`
}

// SelectionRequest is the POST /api/dashboard body.
type SelectionRequest struct {
	Selected []string `json:"selected"`
}

// DashboardResponse is the result of a selection change.
type DashboardResponse struct {
	OK       bool              `json:"ok"`
	Selected []string          `json:"selected"`
	Figure   figure.Document   `json:"figure"`
	Stats    capability.Stats  `json:"stats"`
	Panel    []figure.StatLine `json:"panel"`
}

// CapabilityInfo describes one checklist entry.
type CapabilityInfo struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

// CapabilitiesResponse lists the dataset's capabilities.
type CapabilitiesResponse struct {
	OK           bool                       `json:"ok"`
	Capabilities []CapabilityInfo           `json:"capabilities"`
	Defaults     []string                   `json:"defaults"`
	Palette      []capability.CategoryColor `json:"palette"`
}

// RecordsResponse lists stored table rows.
type RecordsResponse struct {
	OK      bool          `json:"ok"`
	Count   int           `json:"count"`
	Records tabular.Table `json:"records"`
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	counts, err := summary.Load(s.snap.SummaryPath)
	if err != nil {
		logging.LogError(err, "read summary counts")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, OverviewResponse{
		OK:      true,
		Summary: counts,
		Table:   tabular.Summarize(s.snap.Table),
	})
}

// selectionFromQuery reads repeated or comma-separated "capability" params.
// ok is false when the parameter is absent.
func selectionFromQuery(r *http.Request) (selected []string, ok bool) {
	values, ok := r.URL.Query()["capability"]
	if !ok {
		return nil, false
	}
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				selected = append(selected, name)
			}
		}
	}
	return selected, true
}

// selection resolves the request's selection, falling back to the defaults
// for GET requests without a capability parameter. It writes a 400 and
// returns false for bad input.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var selected []string
	if r.Method == http.MethodPost {
		var req SelectionRequest
		if err := decodeJSON(w, r, &req, 1<<20); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: "invalid JSON: " + err.Error()})
			return nil, false
		}
		selected = req.Selected
	} else if q, ok := selectionFromQuery(r); ok {
		selected = q
	} else {
		selected = s.defaults
	}

	resolved, err := s.snap.Dataset.Resolve(selected)
	var unknown *capability.UnknownError
	if errors.As(err, &unknown) {
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error(), Unknown: unknown.Names})
		return nil, false
	}
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, false
	}
	return resolved, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	selected, ok := s.selection(w, r)
	if !ok {
		return
	}

	stats, err := capability.CalculateStats(selected, s.snap.Dataset)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	spec, err := figure.Build(selected, s.snap.Dataset)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		OK:       true,
		Selected: selected,
		Figure:   spec.Plotly(),
		Stats:    stats,
		Panel:    figure.StatsPanel(stats, len(selected), s.snap.Dataset.Len()),
	})
}

func (s *Server) capabilityInfos() []CapabilityInfo {
	names := s.snap.Dataset.Names()
	out := make([]CapabilityInfo, 0, len(names))
	for _, name := range names {
		rec, err := s.snap.Dataset.Get(name)
		if err != nil {
			continue
		}
		out = append(out, CapabilityInfo{
			Name:     name,
			Label:    capability.Label(name),
			Category: rec.Category,
			Color:    capability.ColorFor(rec.Category),
		})
	}
	return out
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CapabilitiesResponse{
		OK:           true,
		Capabilities: s.capabilityInfos(),
		Defaults:     s.defaults,
		Palette:      capability.Palette(),
	})
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	panel, isPNG := strings.CutSuffix(file, ".png")
	if !isPNG {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", render.ErrUnknownPanel, file))
		return
	}

	selected, ok := s.selection(w, r)
	if !ok {
		return
	}
	spec, err := figure.Build(selected, s.snap.Dataset)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	img, err := render.Panel(spec, panel)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if s.opts.Records == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("record store is not configured"))
		return
	}

	q := r.URL.Query()
	filter := store.RecordFilter{Country: q.Get("country"), City: q.Get("city")}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		filter.Limit = n
	}

	rows, err := s.opts.Records.Query(r.Context(), filter)
	if err != nil {
		logging.LogError(err, "query records")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordsResponse{OK: true, Count: len(rows), Records: rows})
}

// BenchmarkInfo summarizes a loaded benchmark table.
type BenchmarkInfo struct {
	Name   string `json:"name"`
	Models int    `json:"models"`
	Page   string `json:"page"`
}

func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	out := make([]BenchmarkInfo, 0, len(s.snap.Benchmarks))
	for _, ds := range s.snap.Benchmarks {
		out = append(out, BenchmarkInfo{
			Name:   ds.Name,
			Models: len(ds.Rows),
			Page:   "/pages/" + strings.TrimSuffix(benchmarks.PageFile(ds.Name), ".html"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "benchmarks": out})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, capability.ErrUnknownCapability):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrEmptyPanel), errors.Is(err, render.ErrUnknownPanel), errors.Is(err, benchmarks.ErrPageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
