package figure

import (
	"fmt"

	"github.com/mwiater/capdash/internal/capability"
)

// StatLine is one row of the stats panel.
type StatLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// String renders the line as "Label: Value".
func (l StatLine) String() string {
	return l.Label + ": " + l.Value
}

// StatsPanel formats stats for display. selected is the number of active
// capabilities and total the dataset size.
func StatsPanel(stats capability.Stats, selected, total int) []StatLine {
	return []StatLine{
		{Label: "Active Capabilities", Value: fmt.Sprintf("%d/%d", selected, total)},
		{Label: "Avg Improvement", Value: fmt.Sprintf("%+.1f%%", stats.AvgImprovement)},
		{Label: "Avg Annual Growth", Value: fmt.Sprintf("%.1f%%", stats.AvgAnnualGrowth)},
		{Label: "Score Range", Value: fmt.Sprintf("%.1f%% - %.1f%%", stats.MinCurrent, stats.MaxCurrent)},
	}
}
