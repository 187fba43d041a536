// =============================================================================
// Master Data Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table)
//   - converter (Table -> Record)
//   - jsonwriter, catalog, server (Record)
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// INPUT TABLE
// =============================================================================

// Table is an input table as read from disk.
// Rows are addressed positionally; the first row is the header row.
type Table struct {
	// SourceFile is the path the table was read from.
	SourceFile string

	// Rows contains every row in file order, header included.
	// Rows may have different lengths.
	Rows [][]string
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// RecordType selects which output record a data row is mapped to.
type RecordType string

const (
	// PermissionAdministratorType ("pa") maps rows to PermissionAdministrator.
	PermissionAdministratorType RecordType = "pa"

	// MarketDataAdministratorType ("mda") maps rows to MarketDataAdministrator.
	MarketDataAdministratorType RecordType = "mda"
)

// ParseRecordType converts a CLI selector into a RecordType.
// The selector is matched case-insensitively after trimming.
func ParseRecordType(s string) (RecordType, error) {
	switch RecordType(strings.ToLower(strings.TrimSpace(s))) {
	case PermissionAdministratorType:
		return PermissionAdministratorType, nil
	case MarketDataAdministratorType:
		return MarketDataAdministratorType, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownRecordType, s,
			PermissionAdministratorType, MarketDataAdministratorType)
	}
}

// Known reports whether t is one of the recognized record types.
func (t RecordType) Known() bool {
	return t == PermissionAdministratorType || t == MarketDataAdministratorType
}

// =============================================================================
// OUTPUT RECORDS
// =============================================================================

// Record is an output record that can be ordered in the output document.
type Record interface {
	// SortKey returns the (country, company) pair the output is ordered by.
	SortKey() (country, company string)
}

// PermissionAdministrator is an entity that manages data-access permissions
// for a country or region. Field order is the JSON output order.
type PermissionAdministrator struct {
	Country         string `json:"country"`
	Company         string `json:"company"`
	Name            string `json:"name"`
	CompanyID       string `json:"companyId"`
	JumpOffURL      string `json:"jumpOffUrl"`
	RegionConnector string `json:"regionConnector"`
}

// SortKey implements Record.
func (p PermissionAdministrator) SortKey() (string, string) {
	return p.Country, p.Company
}

// MarketDataAdministrator is an entity that publishes or manages market data
// for a country or region. Field order is the JSON output order.
type MarketDataAdministrator struct {
	Country                 string `json:"country"`
	Company                 string `json:"company"`
	CompanyID               string `json:"companyId"`
	WebsiteURL              string `json:"websiteUrl"`
	OfficialContact         string `json:"officialContact"`
	PermissionAdministrator string `json:"permissionAdministrator"`
}

// SortKey implements Record.
func (m MarketDataAdministrator) SortKey() (string, string) {
	return m.Country, m.Company
}
