// =============================================================================
// Master Data Converter - Row Validation
// =============================================================================
//
// The input format has no header-driven column resolution. Each record type
// reads fixed column positions, so the only structural check is that a data
// row is wide enough for the highest column its record type reads:
//
//   | type | columns read          | required width |
//   |------|-----------------------|----------------|
//   | pa   | 0, 2, 3, 5, 7         | 8              |
//   | mda  | 0, 2, 4, 5, 6, 13     | 14             |
//
// A short row is fatal for the whole run. There is no partial-result mode.
//
// =============================================================================

package validation

import (
	"fmt"

	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// RowError reports a data row that is narrower than its record type requires.
type RowError struct {
	// RowNumber is the 1-based position of the row in the input table,
	// header included, so it matches what a spreadsheet shows.
	RowNumber int

	// RecordType is the record type the row was mapped to.
	RecordType types.RecordType

	// Required is the number of columns the record type reads.
	Required int

	// Got is the number of columns present in the row.
	Got int
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s record needs %d columns, got %d",
		e.RowNumber, e.RecordType, e.Required, e.Got)
}

// RequiredColumns returns the minimum row width for a record type.
// Unknown record types need no columns.
func RequiredColumns(recordType types.RecordType) int {
	switch recordType {
	case types.PermissionAdministratorType:
		return 8
	case types.MarketDataAdministratorType:
		return 14
	default:
		return 0
	}
}

// ValidateRow checks the width of a data row.
//
// PARAMETERS:
//   - row: The row fields.
//   - rowIndex: The 0-based index of the row in the table.
//   - recordType: The record type the row will be mapped to.
//
// RETURNS:
//   - nil if the row is wide enough, otherwise a *RowError.
func ValidateRow(row []string, rowIndex int, recordType types.RecordType) error {
	required := RequiredColumns(recordType)
	if len(row) < required {
		return &RowError{
			RowNumber:  rowIndex + 1,
			RecordType: recordType,
			Required:   required,
			Got:        len(row),
		}
	}
	return nil
}
