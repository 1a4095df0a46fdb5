// internal/capability/capability.go
// Package capability models per-capability score histories and the growth
// statistics computed over a user's selection.
package capability

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownCapability is returned when a selection names a capability that is not in the dataset.
	ErrUnknownCapability = errors.New("unknown capability")
	// ErrNoHeights is returned when a capability has no scores to compute with.
	ErrNoHeights = errors.New("capability has no heights")
)

// Record is one named capability and its yearly scores in [0, 1].
type Record struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Heights  map[string]float64 `json:"heights"`
}

// Point is a single (year, score) pair.
type Point struct {
	Year  string  `json:"year"`
	Score float64 `json:"score"`
}

// Span summarizes a record's history by its endpoints.
type Span struct {
	First float64
	Last  float64
	Years int
}

// SortedYears orders the year keys of a heights map. Keys sort numerically
// when every one of them is an integer and lexicographically otherwise. Both
// the stats calculator and the figure assembler go through this function.
func SortedYears(heights map[string]float64) []string {
	years := make([]string, 0, len(heights))
	numeric := true
	for y := range heights {
		years = append(years, y)
		if _, err := strconv.Atoi(strings.TrimSpace(y)); err != nil {
			numeric = false
		}
	}

	if numeric {
		sort.Slice(years, func(i, j int) bool {
			a, _ := strconv.Atoi(strings.TrimSpace(years[i]))
			b, _ := strconv.Atoi(strings.TrimSpace(years[j]))
			if a == b {
				return years[i] < years[j]
			}
			return a < b
		})
		return years
	}
	sort.Strings(years)
	return years
}

// Series returns the record's heights as year-ordered points.
func (r Record) Series() []Point {
	years := SortedYears(r.Heights)
	points := make([]Point, len(years))
	for i, y := range years {
		points[i] = Point{Year: y, Score: r.Heights[y]}
	}
	return points
}

// Span returns the first and last score in year order.
func (r Record) Span() (Span, error) {
	points := r.Series()
	if len(points) == 0 {
		return Span{}, fmt.Errorf("%w: %s", ErrNoHeights, r.Name)
	}
	return Span{
		First: points[0].Score,
		Last:  points[len(points)-1].Score,
		Years: len(points),
	}, nil
}

// Improvement is the change from first to last score in percentage points.
func (s Span) Improvement() float64 {
	return s.Last*100 - s.First*100
}

// Current is the latest score in percent.
func (s Span) Current() float64 {
	return s.Last * 100
}

// AnnualGrowth returns the average annual growth percentage and whether the
// span is growth-eligible.
func (s Span) AnnualGrowth() (float64, bool) {
	return GrowthRate(s.First, s.Last, s.Years)
}

// GrowthRate computes ((last-first)/first)/(years-1)*100. It reports false
// when first is zero or fewer than two years exist; such capabilities are
// left out of growth averages and the growth panel.
func GrowthRate(first, last float64, years int) (float64, bool) {
	if years < 2 || first == 0 {
		return 0, false
	}
	return ((last - first) / first) / float64(years-1) * 100, true
}

var titleCaser = cases.Title(language.English)

// Label turns a capability key such as "code_generation" into "Code Generation".
func Label(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}
