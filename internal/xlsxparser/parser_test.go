package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "masterdata.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Country", "Id", "Company", "Name"},
		{"AT", "1", "Acme Corp", "Acme"},
		{"NL", "2", "Beta BV"},
	})

	table, err := Parse(path, "")
	require.NoError(t, err)

	assert.Equal(t, path, table.SourceFile)
	assert.Equal(t, [][]string{
		{"Country", "Id", "Company", "Name"},
		{"AT", "1", "Acme Corp", "Acme"},
		{"NL", "2", "Beta BV", ""},
	}, table.Rows)
}

func TestParse_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Masterdata", [][]interface{}{
		{"Country"},
		{"DE"},
	})

	table, err := Parse(path, "Masterdata")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Country"}, {"DE"}}, table.Rows)

	_, err = Parse(path, "Other")
	assert.Error(t, err)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}

func TestPadRows(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]string
		expected [][]string
	}{
		{"empty", nil, [][]string{}},
		{"already even", [][]string{{"a", "b"}, {"c", "d"}}, [][]string{{"a", "b"}, {"c", "d"}}},
		{"pads short rows", [][]string{{"a", "b", "c"}, {"d"}, {}}, [][]string{{"a", "b", "c"}, {"d", "", ""}, {"", "", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, padRows(tt.input))
		})
	}
}

func TestParse_RowsTakeSheetWidth(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Country", "Id", "Company", "Name", "Notes", "CompanyId", "Contact", "JumpOffUrl"},
		{"AT", "1", "Acme Corp"},
	})

	table, err := Parse(path, "")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Cells missing at the end of a row read as empty strings, never as a short row.
	assert.Equal(t, []string{"AT", "1", "Acme Corp", "", "", "", "", ""}, table.Rows[1])
}
