package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/capdash/internal/datafile"
)

func writeSummary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data_summary.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCounters(t *testing.T) {
	path := writeSummary(t, `{
		"total_records": 1234,
		"benchmarks": ["arc_agi", "boolq", "bbh"],
		"capabilities": [{"name": "a"}, {"name": "b"}]
	}`)

	records, err := RecordCount(path)
	require.NoError(t, err)
	assert.Equal(t, 1234, records)

	benchmarks, err := BenchmarkCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, benchmarks)

	caps, err := CapabilityCount(path)
	require.NoError(t, err)
	assert.Equal(t, 2, caps)

	all, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DatasetSummary{TotalRecords: 1234, TotalBenchmarks: 3, TotalCapabilities: 2}, all)
}

func TestCountersMissingField(t *testing.T) {
	path := writeSummary(t, `{"benchmarks": []}`)

	_, err := RecordCount(path)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = CapabilityCount(path)
	assert.ErrorIs(t, err, ErrMissingField)

	n, err := BenchmarkCount(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestCountersWrongType(t *testing.T) {
	path := writeSummary(t, `{"total_records": "many", "benchmarks": {}, "capabilities": null}`)

	_, err := RecordCount(path)
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = BenchmarkCount(path)
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = CapabilityCount(path)
	assert.ErrorIs(t, err, ErrMissingField)

	path = writeSummary(t, `{"total_records": null, "benchmarks": [], "capabilities": []}`)
	n, err := RecordCount(path)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, 0, n)
}

func TestCountersFileErrors(t *testing.T) {
	_, err := RecordCount(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, datafile.ErrFileNotFound)

	path := writeSummary(t, `{"total_records": 1,`)
	_, err = BenchmarkCount(path)
	assert.ErrorIs(t, err, datafile.ErrParse)
}

func TestSchemaAcceptsValidDocument(t *testing.T) {
	doc := []byte(`{"total_records": 5, "benchmarks": [], "capabilities": []}`)
	assert.NoError(t, datafile.Validate("summary", Schema, doc))
	assert.ErrorIs(t, datafile.Validate("summary", Schema, []byte(`{"benchmarks": []}`)), datafile.ErrSchema)
}
