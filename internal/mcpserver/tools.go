package mcpserver

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mwiater/capdash/internal/render"
)

const (
	// ListCapabilitiesName is the canonical name for the capability listing tool.
	ListCapabilitiesName = "list_capabilities"
	// CapabilityStatsName is the canonical name for the selection statistics tool.
	CapabilityStatsName = "capability_stats"
	// DatasetSummaryName is the canonical name for the headline counts tool.
	DatasetSummaryName = "dataset_summary"
	// CapabilityFigureName is the canonical name for the chart tool.
	CapabilityFigureName = "capability_figure"
)

const (
	argCapabilities = "capabilities"
	argPanel        = "panel"
	argFormat       = "format"

	formatPNG    = "png"
	formatPlotly = "plotly"
)

func listCapabilitiesTool() mcp.Tool {
	return mcp.NewTool(ListCapabilitiesName,
		mcp.WithDescription("List every capability in the dataset with its category, colour and latest score."),
	)
}

func capabilityStatsTool() mcp.Tool {
	return mcp.NewTool(CapabilityStatsName,
		mcp.WithDescription("Compute average improvement, average annual growth and current score range for a selection of capabilities."),
		mcp.WithArray(argCapabilities,
			mcp.WithStringItems(),
			mcp.Description("Capability names to aggregate (default: the configured selection)"),
		),
	)
}

func datasetSummaryTool() mcp.Tool {
	return mcp.NewTool(DatasetSummaryName,
		mcp.WithDescription("Report record, benchmark and capability totals plus restaurant table counts."),
	)
}

func capabilityFigureTool() mcp.Tool {
	return mcp.NewTool(CapabilityFigureName,
		mcp.WithDescription("Render one dashboard chart panel for a selection of capabilities."),
		mcp.WithString(argPanel,
			mcp.Required(),
			mcp.Enum(render.PanelNames()...),
			mcp.Description("Panel to render: "+strings.Join(render.PanelNames(), ", ")),
		),
		mcp.WithArray(argCapabilities,
			mcp.WithStringItems(),
			mcp.Description("Capability names to plot (default: the configured selection)"),
		),
		mcp.WithString(argFormat,
			mcp.Enum(formatPNG, formatPlotly),
			mcp.Description("png returns an image; plotly returns the figure JSON (default: png)"),
		),
	)
}
