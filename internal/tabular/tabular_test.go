package tabular

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mwiater/capdash/internal/datafile"
)

func str(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

var null = sql.NullString{}

func sampleTable() Table {
	return Table{
		{Country: str("France"), City: str("Paris"), Cuisine: str("French")},
		{Country: str("France"), City: str("Lyon"), Cuisine: str("Modern")},
		{Country: str("Japan"), City: str("Tokyo"), Cuisine: str("Modern")},
		{Country: null, City: str("Tokyo"), Cuisine: str("Sushi")},
		{Country: str("Japan"), City: null, Cuisine: null},
	}
}

func TestAggregates(t *testing.T) {
	table := sampleTable()
	assert.Equal(t, 2, CountryCount(table))
	assert.Equal(t, 5, RestaurantCount(table))
	assert.Equal(t, 3, CityCount(table))
	assert.Equal(t, "Modern", TopCuisine(table))

	assert.Equal(t, TableSummary{Restaurants: 5, Countries: 2, Cities: 3, TopCuisine: "Modern"}, Summarize(table))
}

func TestTopCuisineAllNull(t *testing.T) {
	table := Table{{Cuisine: null}, {Cuisine: null}}
	assert.Equal(t, NoCuisine, TopCuisine(table))
	assert.Equal(t, NoCuisine, TopCuisine(nil))
}

func TestTopCuisineTieBreaksOnFirstSeen(t *testing.T) {
	table := Table{
		{Cuisine: str("Thai")},
		{Cuisine: str("Italian")},
		{Cuisine: str("Italian")},
		{Cuisine: str("Thai")},
	}
	assert.Equal(t, "Thai", TopCuisine(table))

	table[0], table[1] = table[1], table[0]
	assert.Equal(t, "Italian", TopCuisine(table))
}

func TestReadCSV(t *testing.T) {
	content := strings.Join([]string{
		"Name,Country,City,Cuisine,Award",
		"Le Bistro,France,Paris,French,1 Star",
		"Sushi Ya,Japan,,Sushi,2 Stars",
		"Nowhere,NaN,Rome,,",
	}, "\n")

	table, err := ReadCSV("inline", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, str("Le Bistro"), table[0].Name)
	assert.False(t, table[1].City.Valid)
	assert.False(t, table[2].Country.Valid)
	assert.False(t, table[2].Cuisine.Valid)
	assert.Equal(t, 2, CityCount(table))
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV("inline", strings.NewReader("Country,City\nFrance,Paris\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, datafile.ErrFileNotFound)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Country", "City", "Cuisine"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Spain", "Madrid", "Tapas"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Spain", "Bilbao", "Tapas"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"Italy", "", "Pizza"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, 2, CountryCount(table))
	assert.Equal(t, 2, CityCount(table))
	assert.Equal(t, "Tapas", TopCuisine(table))
}

func TestLoadXLSXMissingFile(t *testing.T) {
	_, err := LoadXLSX(filepath.Join(t.TempDir(), "absent.xlsx"), "")
	assert.ErrorIs(t, err, datafile.ErrFileNotFound)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country,City,Cuisine\nPeru,Lima,Nikkei\n"), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Nikkei", TopCuisine(table))
}
