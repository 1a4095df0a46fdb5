package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/figure"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/mwiater/capdash/internal/render"
	"github.com/mwiater/capdash/internal/summary"
	"github.com/mwiater/capdash/internal/tabular"
)

type capabilityEntry struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	Category     string  `json:"category"`
	Color        string  `json:"color"`
	CurrentScore float64 `json:"current_score"`
}

type statsPayload struct {
	Selected []string         `json:"selected"`
	Stats    capability.Stats `json:"stats"`
	Panel    []string         `json:"panel"`
}

type summaryPayload struct {
	Summary summary.DatasetSummary `json:"summary"`
	Table   tabular.TableSummary   `json:"table"`
}

func (s *Server) handleListCapabilities() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.LogTool("call", ListCapabilitiesName, request.GetArguments())

		ds := s.snap.Dataset
		out := make([]capabilityEntry, 0, ds.Len())
		for _, name := range ds.Names() {
			rec, err := ds.Get(name)
			if err != nil {
				return s.errorResult(ListCapabilitiesName, err), nil
			}
			entry := capabilityEntry{
				Name:     name,
				Label:    capability.Label(name),
				Category: rec.Category,
				Color:    capability.ColorFor(rec.Category),
			}
			if span, err := rec.Span(); err == nil {
				entry.CurrentScore = span.Current()
			}
			out = append(out, entry)
		}
		return s.jsonResult(ListCapabilitiesName, out), nil
	}
}

func (s *Server) handleCapabilityStats() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.LogTool("call", CapabilityStatsName, request.GetArguments())

		selected, err := s.selection(request)
		if err != nil {
			return s.errorResult(CapabilityStatsName, err), nil
		}
		stats, err := capability.CalculateStats(selected, s.snap.Dataset)
		if err != nil {
			return s.errorResult(CapabilityStatsName, err), nil
		}

		lines := figure.StatsPanel(stats, len(selected), s.snap.Dataset.Len())
		panel := make([]string, len(lines))
		for i, l := range lines {
			panel[i] = l.String()
		}
		return s.jsonResult(CapabilityStatsName, statsPayload{Selected: selected, Stats: stats, Panel: panel}), nil
	}
}

func (s *Server) handleDatasetSummary() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.LogTool("call", DatasetSummaryName, request.GetArguments())

		counts, err := summary.Load(s.snap.SummaryPath)
		if err != nil {
			return s.errorResult(DatasetSummaryName, err), nil
		}
		return s.jsonResult(DatasetSummaryName, summaryPayload{
			Summary: counts,
			Table:   tabular.Summarize(s.snap.Table),
		}), nil
	}
}

func (s *Server) handleCapabilityFigure() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.LogTool("call", CapabilityFigureName, request.GetArguments())

		panel, err := request.RequireString(argPanel)
		if err != nil || strings.TrimSpace(panel) == "" {
			return s.errorResult(CapabilityFigureName, fmt.Errorf("%s parameter is required", argPanel)), nil
		}
		format := request.GetString(argFormat, formatPNG)

		selected, err := s.selection(request)
		if err != nil {
			return s.errorResult(CapabilityFigureName, err), nil
		}
		spec, err := figure.Build(selected, s.snap.Dataset)
		if err != nil {
			return s.errorResult(CapabilityFigureName, err), nil
		}

		switch format {
		case formatPlotly:
			doc, err := plotlyPanel(spec, panel)
			if err != nil {
				return s.errorResult(CapabilityFigureName, err), nil
			}
			return s.jsonResult(CapabilityFigureName, doc), nil
		case formatPNG:
			img, err := render.Panel(spec, panel)
			if err != nil {
				return s.errorResult(CapabilityFigureName, err), nil
			}
			logging.LogTool("result", CapabilityFigureName, fmt.Sprintf("%s.png (%d bytes)", panel, len(img)))
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("%s panel for %s", panel, strings.Join(selected, ", "))),
					mcp.NewImageContent(base64.StdEncoding.EncodeToString(img), "image/png"),
				},
			}, nil
		default:
			return s.errorResult(CapabilityFigureName, fmt.Errorf("unsupported format %q", format)), nil
		}
	}
}

func plotlyPanel(spec figure.ChartSpec, panel string) (figure.Document, error) {
	switch panel {
	case render.PanelTimeline:
		return spec.Timeline.Plotly(), nil
	case render.PanelImprovement:
		return spec.Improvement.Plotly(), nil
	case render.PanelGrowth:
		return spec.Growth.Plotly(), nil
	default:
		return figure.Document{}, fmt.Errorf("%w: %q", render.ErrUnknownPanel, panel)
	}
}

// selection reads the capabilities argument, falling back to the defaults
// when it is absent. The argument must be an array of strings. Repeated
// names count once and unknown names are rejected.
func (s *Server) selection(request mcp.CallToolRequest) ([]string, error) {
	raw, ok := request.GetArguments()[argCapabilities]
	if !ok {
		return s.snap.Dataset.Resolve(s.defaults)
	}

	var selected []string
	switch v := raw.(type) {
	case []string:
		selected = v
	case []any:
		selected = make([]string, 0, len(v))
		for i, item := range v {
			name, isString := item.(string)
			if !isString {
				return nil, fmt.Errorf("%s[%d] must be a string, got %T", argCapabilities, i, item)
			}
			selected = append(selected, name)
		}
	default:
		return nil, fmt.Errorf("%s must be an array of strings, got %T", argCapabilities, raw)
	}
	return s.snap.Dataset.Resolve(selected)
}

func (s *Server) jsonResult(tool string, v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.errorResult(tool, err)
	}
	logging.LogTool("result", tool, data)
	return mcp.NewToolResultText(string(data))
}

func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	logging.LogError(err, "tool %s failed", tool)
	return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
}
