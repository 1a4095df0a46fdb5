package capability

// Stats is the aggregate over a selection. Improvement and current scores
// are in percentage points; growth is a percent per year.
type Stats struct {
	AvgImprovement  float64 `json:"avg_improvement"`
	AvgAnnualGrowth float64 `json:"avg_annual_growth_pct"`
	MaxCurrent      float64 `json:"max_current_score"`
	MinCurrent      float64 `json:"min_current_score"`
}

// CalculateStats aggregates improvement, growth and current-score range over
// the selected capabilities. An empty selection yields the zero Stats. Every
// selected name must exist in ds.
func CalculateStats(selected []string, ds *Dataset) (Stats, error) {
	if len(selected) == 0 {
		return Stats{}, nil
	}

	improvements := make([]float64, 0, len(selected))
	current := make([]float64, 0, len(selected))
	var growth []float64

	for _, name := range selected {
		rec, err := ds.Get(name)
		if err != nil {
			return Stats{}, err
		}
		span, err := rec.Span()
		if err != nil {
			return Stats{}, err
		}

		improvements = append(improvements, span.Improvement())
		current = append(current, span.Current())
		if g, ok := span.AnnualGrowth(); ok {
			growth = append(growth, g)
		}
	}

	stats := Stats{
		AvgImprovement: mean(improvements),
		MaxCurrent:     current[0],
		MinCurrent:     current[0],
	}
	if len(growth) > 0 {
		stats.AvgAnnualGrowth = mean(growth)
	}
	for _, c := range current[1:] {
		if c > stats.MaxCurrent {
			stats.MaxCurrent = c
		}
		if c < stats.MinCurrent {
			stats.MinCurrent = c
		}
	}
	return stats, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
