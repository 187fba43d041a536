// =============================================================================
// Master Data Converter - Transformation Engine
// =============================================================================
//
// This module holds the field-level rules that turn one positional input row
// into one output record.
//
// NORMALIZATION RULES:
//   - Country codes are lowercased, nothing else
//   - A value is "empty" when, trimmed and lowercased, it is one of
//     "", "-", "n.a." or "n/a"
//   - Slugs are lowercase, " / " and " " become "-", and everything outside
//     [0-9a-z-] is dropped
//   - A value is a URL when it contains "http" anywhere
//   - Only the literal contact "n.a." is blanked
//
// COLUMN LAYOUT:
//
//   pa:  0 country | 2 company | 3 name | 5 companyId | 7 jumpOffUrl
//   mda: 0 country | 2 company | 4 companyId | 5 websiteUrl |
//        6 officialContact | 13 permissionAdministrator
//
// Rows must already be width-checked by the validation package.
//
// =============================================================================

package converter

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// =============================================================================
// REGION CONNECTORS
// =============================================================================

// DefaultRegionConnectors is the built-in country -> region connector table.
var DefaultRegionConnectors = map[string]string{
	"at": "at-eda",
	"be": "be-fluvius",
	"de": "de-eta",
	"dk": "dk-energinet",
	"es": "es-datadis",
	"fi": "fi-fingrid",
	"fr": "fr-enedis",
	"nl": "nl-mijn-aansluiting",
	"us": "us-green-button",
	"ca": "us-green-button",
}

// ConnectorTable maps lowercase country codes to region connector ids.
type ConnectorTable map[string]string

// NewConnectorTable returns the default table with overrides merged over it.
// Override keys are normalized like country codes.
func NewConnectorTable(overrides map[string]string) ConnectorTable {
	table := make(ConnectorTable, len(DefaultRegionConnectors)+len(overrides))
	for country, connector := range DefaultRegionConnectors {
		table[country] = connector
	}
	for country, connector := range overrides {
		table[NormalizeCountry(country)] = connector
	}
	return table
}

// Lookup returns the connector for a country, or the country itself when the
// table has no entry.
func (t ConnectorTable) Lookup(country string) string {
	if connector, ok := t[country]; ok {
		return connector
	}
	return country
}

// =============================================================================
// NORMALIZATION FUNCTIONS
// =============================================================================

var (
	emptyValues = map[string]struct{}{
		"":     {},
		"-":    {},
		"n.a.": {},
		"n/a":  {},
	}

	slugInvalidChars = regexp.MustCompile(`[^0-9a-z-]`)
)

// NormalizeCountry lowercases a country code. Surrounding whitespace is kept.
func NormalizeCountry(code string) string {
	return strings.ToLower(code)
}

// IsEmpty reports whether a cell holds no usable value.
func IsEmpty(value string) bool {
	_, ok := emptyValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// Slugify converts display text into a kebab-case identifier.
//
// EXAMPLE:
//   "Netz Niederösterreich / EVN" -> "netz-niedersterreich-evn"
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = strings.ReplaceAll(slug, " / ", "-")
	slug = strings.ReplaceAll(slug, " ", "-")
	return slugInvalidChars.ReplaceAllString(slug, "")
}

// HasURL reports whether a value looks like a URL. Well-formedness is not checked.
func HasURL(value string) bool {
	return strings.Contains(value, "http")
}

// IsBlankRow reports whether every field of a row is whitespace.
func IsBlankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// ROW MAPPING
// =============================================================================

// NewPermissionAdministrator maps a pa row. The row must have at least 8 columns.
func NewPermissionAdministrator(row []string, connectors ConnectorTable) types.PermissionAdministrator {
	country := NormalizeCountry(row[0])
	company := row[2]

	name := company
	if !IsEmpty(row[3]) {
		name = row[3]
	}

	return types.PermissionAdministrator{
		Country:         country,
		Company:         company,
		Name:            name,
		CompanyID:       companyID(row[5], name),
		JumpOffURL:      urlOrEmpty(row[7]),
		RegionConnector: connectors.Lookup(country),
	}
}

// NewMarketDataAdministrator maps an mda row. The row must have at least 14 columns.
func NewMarketDataAdministrator(row []string) types.MarketDataAdministrator {
	company := row[2]

	contact := row[6]
	if contact == "n.a." {
		contact = ""
	}

	return types.MarketDataAdministrator{
		Country:                 NormalizeCountry(row[0]),
		Company:                 company,
		CompanyID:               companyID(row[4], company),
		WebsiteURL:              urlOrEmpty(row[5]),
		OfficialContact:         contact,
		PermissionAdministrator: row[13],
	}
}

// companyID returns the explicit id as written, or the slug of fallback when
// the id column is empty.
func companyID(explicit, fallback string) string {
	if IsEmpty(explicit) {
		return Slugify(fallback)
	}
	return explicit
}

func urlOrEmpty(value string) string {
	if HasURL(value) {
		return value
	}
	return ""
}
