// internal/tabular/tabular.go
// Package tabular aggregates restaurant-style records (country, city,
// cuisine) into headline counts.
package tabular

import (
	"database/sql"
)

// NoCuisine is returned by TopCuisine when no row has a cuisine.
const NoCuisine = "-"

// Record is one row of the tabular dataset. Null cells are invalid NullStrings.
type Record struct {
	Name    sql.NullString `json:"name"`
	Country sql.NullString `json:"country"`
	City    sql.NullString `json:"city"`
	Cuisine sql.NullString `json:"cuisine"`
}

// Table is an ordered collection of records.
type Table []Record

// TableSummary bundles the four tabular aggregates.
type TableSummary struct {
	Restaurants int    `json:"restaurants"`
	Countries   int    `json:"countries"`
	Cities      int    `json:"cities"`
	TopCuisine  string `json:"top_cuisine"`
}

// CountryCount returns the number of distinct non-null countries.
func CountryCount(t Table) int {
	return distinct(t, func(r Record) sql.NullString { return r.Country })
}

// RestaurantCount returns the number of rows.
func RestaurantCount(t Table) int {
	return len(t)
}

// CityCount returns the number of distinct non-null cities.
func CityCount(t Table) int {
	return distinct(t, func(r Record) sql.NullString { return r.City })
}

// TopCuisine returns the most frequent non-null cuisine. When several share
// the highest count the one seen first in table order wins. Returns
// NoCuisine when no row has a cuisine.
func TopCuisine(t Table) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range t {
		if !r.Cuisine.Valid {
			continue
		}
		if _, seen := counts[r.Cuisine.String]; !seen {
			order = append(order, r.Cuisine.String)
		}
		counts[r.Cuisine.String]++
	}

	top, best := NoCuisine, 0
	for _, c := range order {
		if counts[c] > best {
			top, best = c, counts[c]
		}
	}
	return top
}

// Summarize computes every aggregate in one call.
func Summarize(t Table) TableSummary {
	return TableSummary{
		Restaurants: RestaurantCount(t),
		Countries:   CountryCount(t),
		Cities:      CityCount(t),
		TopCuisine:  TopCuisine(t),
	}
}

func distinct(t Table, field func(Record) sql.NullString) int {
	seen := make(map[string]struct{})
	for _, r := range t {
		if v := field(r); v.Valid {
			seen[v.String] = struct{}{}
		}
	}
	return len(seen)
}
