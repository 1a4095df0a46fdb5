package capability

// DefaultColor is used for categories missing from the palette.
const DefaultColor = "#ffffff"

// CategoryColor pairs a category with its display colour.
type CategoryColor struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

var palette = []CategoryColor{
	{Category: "coding", Color: "#636EFA"},
	{Category: "reasoning", Color: "#EF553B"},
	{Category: "knowledge", Color: "#00CC96"},
	{Category: "games", Color: "#AB63FA"},
	{Category: "mathematics", Color: "#FFA15A"},
	{Category: "agents", Color: "#19D3F3"},
}

var categoryColors = func() map[string]string {
	m := make(map[string]string, len(palette))
	for _, entry := range palette {
		m[entry.Category] = entry.Color
	}
	return m
}()

// ColorFor returns the colour for category, or DefaultColor.
func ColorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultColor
}

// Palette returns the known categories in legend order.
func Palette() []CategoryColor {
	out := make([]CategoryColor, len(palette))
	copy(out, palette)
	return out
}
