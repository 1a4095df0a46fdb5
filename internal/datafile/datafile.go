// internal/datafile/datafile.go
// Package datafile reads the static JSON artifacts the dashboard is built from
// and classifies the ways reading them can fail.
package datafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrFileNotFound is returned when an artifact path does not exist.
	ErrFileNotFound = errors.New("data file not found")
	// ErrParse is returned when an artifact is not valid JSON.
	ErrParse = errors.New("malformed JSON")
	// ErrSchema is returned when a document parses but does not have the expected shape.
	ErrSchema = errors.New("document does not match schema")
)

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Name   string
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrSchema, e.Name, strings.Join(e.Issues, "; "))
}

// Unwrap lets callers match SchemaError with errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error { return ErrSchema }

// Read returns the raw bytes at path.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Decode unmarshals data into v, reporting syntax problems as ErrParse.
func Decode(name string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}
	return nil
}

// ReadJSON reads path and decodes it into v.
func ReadJSON(path string, v any) error {
	data, err := Read(path)
	if err != nil {
		return err
	}
	return Decode(path, data, v)
}

// Validate checks data against a JSON schema document.
func Validate(name, schema string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: %s", ErrParse, name)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, re.String())
	}
	return &SchemaError{Name: name, Issues: issues}
}
