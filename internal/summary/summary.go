// internal/summary/summary.go
// Package summary reads dataset totals from data_summary.json.
package summary

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwiater/capdash/internal/datafile"
)

// ErrMissingField is returned when a required key is absent or has the wrong type.
var ErrMissingField = errors.New("missing field")

// Schema describes data_summary.json. It is used by the validate command;
// the counters below check their own key so a missing key is always
// reported as ErrMissingField.
const Schema = `{
  "type": "object",
  "required": ["total_records", "benchmarks", "capabilities"],
  "properties": {
    "total_records": {"type": "integer", "minimum": 0},
    "benchmarks": {"type": "array"},
    "capabilities": {"type": "array"}
  }
}`

// DatasetSummary holds the three headline totals.
type DatasetSummary struct {
	TotalRecords      int `json:"total_records"`
	TotalBenchmarks   int `json:"total_benchmarks"`
	TotalCapabilities int `json:"total_capabilities"`
}

type document map[string]json.RawMessage

func readDocument(path string) (document, error) {
	var doc document
	if err := datafile.ReadJSON(path, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: document is not an object", datafile.ErrParse, path)
	}
	return doc, nil
}

func (d document) integer(path, key string) (int, error) {
	raw, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s: %q", ErrMissingField, path, key)
	}
	var n *int
	if err := json.Unmarshal(raw, &n); err != nil || n == nil {
		return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrMissingField, path, key)
	}
	return *n, nil
}

func (d document) arrayLen(path, key string) (int, error) {
	raw, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s: %q", ErrMissingField, path, key)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return 0, fmt.Errorf("%w: %s: %q is not an array", ErrMissingField, path, key)
	}
	return len(items), nil
}

// RecordCount returns the total_records value.
func RecordCount(path string) (int, error) {
	doc, err := readDocument(path)
	if err != nil {
		return 0, err
	}
	return doc.integer(path, "total_records")
}

// BenchmarkCount returns the length of the benchmarks array.
func BenchmarkCount(path string) (int, error) {
	doc, err := readDocument(path)
	if err != nil {
		return 0, err
	}
	return doc.arrayLen(path, "benchmarks")
}

// CapabilityCount returns the length of the capabilities array.
func CapabilityCount(path string) (int, error) {
	doc, err := readDocument(path)
	if err != nil {
		return 0, err
	}
	return doc.arrayLen(path, "capabilities")
}

// Load reads all three totals with a single file read.
func Load(path string) (DatasetSummary, error) {
	doc, err := readDocument(path)
	if err != nil {
		return DatasetSummary{}, err
	}

	var s DatasetSummary
	if s.TotalRecords, err = doc.integer(path, "total_records"); err != nil {
		return DatasetSummary{}, err
	}
	if s.TotalBenchmarks, err = doc.arrayLen(path, "benchmarks"); err != nil {
		return DatasetSummary{}, err
	}
	if s.TotalCapabilities, err = doc.arrayLen(path, "capabilities"); err != nil {
		return DatasetSummary{}, err
	}
	return s, nil
}
