// =============================================================================
// Master Data Converter - XLSX Parser
// =============================================================================
//
// Master data is usually maintained in a spreadsheet and exported to CSV.
// This module reads the workbook directly so the export step can be skipped.
// The result is the same positional types.Table the CSV parser produces:
//
//   | Column A | Column B | Column C     | ... |
//   |----------|----------|--------------|-----|
//   | Country  | Id       | Company      | ... |   <- row 0, discarded later
//   | AT       | 1        | Acme Corp    | ... |
//
// Excel drops trailing empty cells from a row. Rows are padded to the width
// of the widest row so an empty last column does not look like a short row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// Parse reads one sheet of an XLSX workbook.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - sheet: The sheet name. Empty selects the first sheet.
//
// RETURNS:
//   - The table with every row of the sheet, header included.
//   - An error if the workbook cannot be opened or the sheet does not exist.
func Parse(filePath, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheetName, filePath)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &types.Table{
		SourceFile: filePath,
		Rows:       padRows(rows),
	}, nil
}

// padRows extends every row to the width of the widest row.
//
// A workbook does not store trailing empty cells, so a row that ends in blank
// columns comes back shorter than the header. Widening to the sheet width
// treats those cells as empty values. As a consequence the short-row check
// never fires for XLSX input; it applies to CSV, where row width is explicit.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < width {
			full := make([]string, width)
			copy(full, row)
			row = full
		}
		padded = append(padded, row)
	}

	return padded
}
