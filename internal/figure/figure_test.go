package figure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/capdash/internal/capability"
)

func testDataset(t *testing.T) *capability.Dataset {
	t.Helper()
	ds, err := capability.NewDataset(
		capability.Record{Name: "code_generation", Category: "coding", Heights: map[string]float64{"2019": 0.2, "2022": 0.35, "2025": 0.5}},
		capability.Record{Name: "physical_intuition", Category: "reasoning", Heights: map[string]float64{"2019": 0.1, "2025": 0.4}},
		capability.Record{Name: "tie_a", Category: "games", Heights: map[string]float64{"2020": 0.1, "2021": 0.2}},
		capability.Record{Name: "tie_b", Category: "agents", Heights: map[string]float64{"2020": 0.2, "2021": 0.4}},
		capability.Record{Name: "single_year", Category: "knowledge", Heights: map[string]float64{"2024": 0.7}},
		capability.Record{Name: "from_zero", Category: "mystery", Heights: map[string]float64{"2019": 0, "2025": 0.3}},
		capability.Record{Name: "an_unusually_long_capability_name", Category: "mathematics", Heights: map[string]float64{"2019": 0.5, "2025": 0.6}},
		capability.Record{Name: "empty", Category: "coding", Heights: map[string]float64{}},
	)
	require.NoError(t, err)
	return ds
}

func TestBuildTimeline(t *testing.T) {
	spec, err := Build([]string{"physical_intuition", "code_generation"}, testDataset(t))
	require.NoError(t, err)

	require.Len(t, spec.Timeline.Series, 2)
	first := spec.Timeline.Series[0]
	assert.Equal(t, "physical_intuition", first.Name)
	assert.Equal(t, "#EF553B", first.Color)
	assert.Equal(t, []string{"2019", "2025"}, first.X)
	assert.InDeltaSlice(t, []float64{10, 40}, first.Y, 1e-9)

	second := spec.Timeline.Series[1]
	assert.Equal(t, []string{"2019", "2022", "2025"}, second.X)
	assert.InDeltaSlice(t, []float64{20, 35, 50}, second.Y, 1e-9)
}

func TestBuildImprovementKeepsSelectionOrder(t *testing.T) {
	spec, err := Build([]string{"code_generation", "physical_intuition", "single_year"}, testDataset(t))
	require.NoError(t, err)

	bars := spec.Improvement.Bars
	require.Len(t, bars, 3)
	assert.Equal(t, "code_generation", bars[0].Name)
	assert.InDelta(t, 30.0, bars[0].Value, 1e-9)
	assert.Equal(t, "+30.0%", bars[0].Text)
	assert.Equal(t, "physical_intuition", bars[1].Name)
	assert.Equal(t, "single_year", bars[2].Name)
	assert.InDelta(t, 0.0, bars[2].Value, 1e-9)
	assert.True(t, spec.Improvement.Horizontal)
}

func TestBuildGrowthSortedAndFiltered(t *testing.T) {
	spec, err := Build([]string{"code_generation", "single_year", "physical_intuition", "from_zero"}, testDataset(t))
	require.NoError(t, err)

	bars := spec.Growth.Bars
	require.Len(t, bars, 2)
	// physical_intuition: (0.4-0.1)/0.1/1*100 = 300; code_generation: 1.5/2*100 = 75
	assert.Equal(t, "physical_intuition", bars[0].Name)
	assert.InDelta(t, 300.0, bars[0].Value, 1e-9)
	assert.Equal(t, "300.0%", bars[0].Text)
	assert.Equal(t, "code_generation", bars[1].Name)
	assert.InDelta(t, 75.0, bars[1].Value, 1e-9)

	// from_zero still shows in the other panels with the default colour
	assert.Len(t, spec.Timeline.Series, 4)
	assert.Equal(t, capability.DefaultColor, spec.Timeline.Series[3].Color)
}

func TestBuildGrowthTiesKeepSelectionOrder(t *testing.T) {
	ds := testDataset(t)

	spec, err := Build([]string{"tie_a", "tie_b"}, ds)
	require.NoError(t, err)
	require.Len(t, spec.Growth.Bars, 2)
	assert.Equal(t, "tie_a", spec.Growth.Bars[0].Name)
	assert.Equal(t, "tie_b", spec.Growth.Bars[1].Name)

	spec, err = Build([]string{"tie_b", "tie_a"}, ds)
	require.NoError(t, err)
	assert.Equal(t, "tie_b", spec.Growth.Bars[0].Name)
	assert.Equal(t, "tie_a", spec.Growth.Bars[1].Name)
}

func TestBuildEmptyGrowthPanel(t *testing.T) {
	spec, err := Build([]string{"single_year"}, testDataset(t))
	require.NoError(t, err)
	assert.Empty(t, spec.Growth.Bars)
	assert.Len(t, spec.Improvement.Bars, 1)
}

func TestBuildEmptySelection(t *testing.T) {
	spec, err := Build(nil, testDataset(t))
	require.NoError(t, err)
	assert.Empty(t, spec.Timeline.Series)
	assert.Empty(t, spec.Improvement.Bars)
	assert.Empty(t, spec.Growth.Bars)
	assert.Equal(t, TimelineTitle, spec.Timeline.Title)
}

func TestBuildErrors(t *testing.T) {
	ds := testDataset(t)

	_, err := Build([]string{"code_generation", "nope"}, ds)
	assert.ErrorIs(t, err, capability.ErrUnknownCapability)

	_, err = Build([]string{"empty"}, ds)
	assert.ErrorIs(t, err, capability.ErrNoHeights)
}

func TestLabelsTruncated(t *testing.T) {
	spec, err := Build([]string{"an_unusually_long_capability_name"}, testDataset(t))
	require.NoError(t, err)
	assert.Equal(t, "an_unusually_long_ca", spec.Improvement.Bars[0].Label)
	assert.Equal(t, "an_unusually_long_capability_name", spec.Improvement.Bars[0].Name)

	assert.Equal(t, "héllo", Truncate("héllo", 5))
	assert.Equal(t, "hé", Truncate("héllo", 2))
}

func TestPlotlyDocument(t *testing.T) {
	spec, err := Build([]string{"code_generation", "physical_intuition"}, testDataset(t))
	require.NoError(t, err)

	doc := spec.Plotly()
	require.Len(t, doc.Data, 4)
	assert.Equal(t, "scatter", doc.Data[0].Type)
	assert.Equal(t, "bar", doc.Data[2].Type)
	assert.Equal(t, "h", doc.Data[2].Orientation)
	assert.Equal(t, "x3", doc.Data[3].XAxis)
	assert.Equal(t, Height, doc.Layout["height"])
	assert.Equal(t, PaperColor, doc.Layout["paper_bgcolor"])

	raw, err := spec.JSON()
	require.NoError(t, err)
	var decoded struct {
		Data   []map[string]any `json:"data"`
		Layout map[string]any   `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Data, 4)
	assert.Len(t, decoded.Layout["annotations"], 3)
}

func TestStatsPanel(t *testing.T) {
	stats := capability.Stats{AvgImprovement: 30, AvgAnnualGrowth: 150, MaxCurrent: 80, MinCurrent: 50}
	lines := StatsPanel(stats, 2, 10)

	require.Len(t, lines, 4)
	assert.Equal(t, "Active Capabilities: 2/10", lines[0].String())
	assert.Equal(t, "Avg Improvement: +30.0%", lines[1].String())
	assert.Equal(t, "Avg Annual Growth: 150.0%", lines[2].String())
	assert.Equal(t, "Score Range: 50.0% - 80.0%", lines[3].String())
}

func TestNegativeImprovementKeepsItsSign(t *testing.T) {
	ds, err := capability.NewDataset(
		capability.Record{Name: "regressed", Category: "coding", Heights: map[string]float64{"2020": 0.6, "2024": 0.55}},
	)
	require.NoError(t, err)

	spec, err := Build([]string{"regressed"}, ds)
	require.NoError(t, err)
	require.Len(t, spec.Improvement.Bars, 1)
	assert.InDelta(t, -5.0, spec.Improvement.Bars[0].Value, 1e-9)
	assert.Equal(t, "-5.0%", spec.Improvement.Bars[0].Text)

	stats, err := capability.CalculateStats([]string{"regressed"}, ds)
	require.NoError(t, err)
	lines := StatsPanel(stats, 1, 1)
	assert.Equal(t, "Avg Improvement: -5.0%", lines[1].String())
}
