package capability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/capdash/internal/datafile"
)

// Schema describes capability_heights.json.
const Schema = `{
  "type": "object",
  "required": ["all"],
  "properties": {
    "all": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["heights", "category"],
        "properties": {
          "category": {"type": "string"},
          "heights": {
            "type": "object",
            "additionalProperties": {"type": "number", "minimum": 0, "maximum": 1}
          }
        }
      }
    }
  }
}`

// Dataset is an immutable set of capability records keyed by name. It is
// safe for concurrent readers.
type Dataset struct {
	records map[string]Record
	names   []string
}

type heightsDocument struct {
	All map[string]struct {
		Heights  map[string]float64 `json:"heights"`
		Category string             `json:"category"`
	} `json:"all"`
}

// NewDataset builds a dataset from records. Names must be unique.
func NewDataset(records ...Record) (*Dataset, error) {
	ds := &Dataset{records: make(map[string]Record, len(records))}
	for _, r := range records {
		if r.Name == "" {
			return nil, fmt.Errorf("capability record without a name")
		}
		if _, dup := ds.records[r.Name]; dup {
			return nil, fmt.Errorf("duplicate capability %q", r.Name)
		}
		heights := make(map[string]float64, len(r.Heights))
		for y, v := range r.Heights {
			heights[y] = v
		}
		r.Heights = heights
		ds.records[r.Name] = r
		ds.names = append(ds.names, r.Name)
	}
	sort.Strings(ds.names)
	return ds, nil
}

// Load reads and validates a capability_heights.json document.
func Load(path string) (*Dataset, error) {
	data, err := datafile.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse validates and decodes a capability_heights.json payload.
func Parse(name string, data []byte) (*Dataset, error) {
	if err := datafile.Validate(name, Schema, data); err != nil {
		return nil, err
	}

	var doc heightsDocument
	if err := datafile.Decode(name, data, &doc); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(doc.All))
	for capName, entry := range doc.All {
		records = append(records, Record{
			Name:     capName,
			Category: entry.Category,
			Heights:  entry.Heights,
		})
	}
	return NewDataset(records...)
}

// Names returns every capability name in sorted order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of capabilities.
func (d *Dataset) Len() int { return len(d.names) }

// Contains reports whether name is in the dataset.
func (d *Dataset) Contains(name string) bool {
	_, ok := d.records[name]
	return ok
}

// Get returns the record for name or ErrUnknownCapability.
func (d *Dataset) Get(name string) (Record, error) {
	r, ok := d.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
	}
	return r, nil
}

// FilterKnown splits selection into names present in the dataset and names
// that are not, preserving order. Repeated names are kept once.
func (d *Dataset) FilterKnown(selection []string) (known, unknown []string) {
	for _, name := range Dedupe(selection) {
		if d.Contains(name) {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	return known, unknown
}

// Resolve returns selection with repeated names removed, first occurrence
// first. Any name missing from the dataset yields an *UnknownError. The
// result is never nil.
func (d *Dataset) Resolve(selection []string) ([]string, error) {
	known, unknown := d.FilterKnown(selection)
	if len(unknown) > 0 {
		return nil, &UnknownError{Names: unknown}
	}
	if known == nil {
		known = []string{}
	}
	return known, nil
}

// UnknownError lists the selected names that are not in the dataset.
type UnknownError struct {
	Names []string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownCapability, strings.Join(e.Names, ", "))
}

func (e *UnknownError) Unwrap() error { return ErrUnknownCapability }

// Dedupe keeps the first occurrence of every name.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
