package tabular

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mwiater/capdash/internal/datafile"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

// RequiredColumns must appear in the header row of every table.
var RequiredColumns = []string{"Country", "City", "Cuisine"}

var nullTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "null": {}, "NULL": {}, "<NA>": {},
}

// Load reads a .csv or .xlsx file based on its extension. For workbooks the
// first sheet is used.
func Load(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads a comma-separated file with a header row.
func LoadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", datafile.ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(path, f)
}

// ReadCSV parses CSV content from r. name is used in error messages.
func ReadCSV(name string, r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return fromRows(name, rows)
}

// LoadXLSX reads a worksheet from an Excel workbook. An empty sheet name
// selects the first sheet.
func LoadXLSX(path, sheet string) (Table, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", datafile.ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return fromRows(path, rows)
}

func fromRows(name string, rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: no header row", ErrMissingColumn, name)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s: %q", ErrMissingColumn, name, col)
		}
	}

	cell := func(row []string, col string) sql.NullString {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return sql.NullString{}
		}
		v := strings.TrimSpace(row[i])
		if _, isNull := nullTokens[v]; isNull {
			return sql.NullString{}
		}
		return sql.NullString{String: v, Valid: true}
	}

	table := make(Table, 0, len(rows)-1)
	for _, row := range rows[1:] {
		table = append(table, Record{
			Name:    cell(row, "Name"),
			Country: cell(row, "Country"),
			City:    cell(row, "City"),
			Cuisine: cell(row, "Cuisine"),
		})
	}
	return table, nil
}
