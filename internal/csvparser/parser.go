// =============================================================================
// Master Data Converter - CSV Parser Module
// =============================================================================
//
// This module reads comma-delimited master-data exports into a positional
// types.Table. It deliberately knows nothing about headers or column names:
// the converter addresses columns by index and skips the first row itself.
//
// READER SETTINGS:
//   - Delimiter from config.InputConfig (default ',')
//   - Variable number of fields per row (short rows are reported later, by
//     the converter, with the row number)
//   - Lazy quotes, because the exports are hand-edited spreadsheets
//   - Leading spaces are kept: column values are emitted raw
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/masterdata-converter/internal/config"
	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns every row, header included.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The input settings from the configuration.
//
// RETURNS:
//   - The parsed table. An empty file yields a table with no rows.
//   - An error if the file cannot be opened or is not valid CSV.
func Parse(filePath string, settings config.InputConfig) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// ParseReader reads CSV data from r.
func ParseReader(r io.Reader, settings config.InputConfig) (*types.Table, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if rows == nil {
		rows = [][]string{}
	}

	return &types.Table{Rows: rows}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.InputConfig) {
	reader.Comma = ','
	if settings.Delimiter != "" {
		reader.Comma = settings.DelimiterRune()
	}

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = false
}
