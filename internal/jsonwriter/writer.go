// =============================================================================
// Master Data Converter - JSON Writer Module
// =============================================================================
//
// This module generates the output document: a single JSON array holding
// the sorted records, one object per record.
//
// OUTPUT FORMAT:
//
//   [
//     {
//       "country": "at",
//       "company": "Acme Corp",
//       ...
//     }
//   ]
//
//   - Field order follows the record struct declaration
//   - Indentation is two spaces by default
//   - Non-ASCII text (U+2028 and U+2029 included) and the characters
//     <, >, & are written literally
//   - An empty record list is written as [] (never null)
//   - The document ends with a newline
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ginjaninja78/masterdata-converter/internal/types"
	"github.com/ginjaninja78/masterdata-converter/pkg/utils"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options contains options for JSON generation.
type Options struct {
	// Indent is the per-level indentation.
	// Default: "  " (two spaces)
	Indent string

	// FileMode is the permission of the written file.
	// Default: 0644
	FileMode os.FileMode
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Indent:   "  ",
		FileMode: 0644,
	}
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// Generate renders records as a JSON array.
//
// PARAMETERS:
//   - records: The records in output order.
//   - opts: The generation options.
//
// RETURNS:
//   - The encoded document.
//   - An error if a record cannot be encoded.
func Generate(records []types.Record, opts Options) ([]byte, error) {
	if records == nil {
		records = []types.Record{}
	}
	return Marshal(records, opts.Indent)
}

// Marshal encodes any value the same way output documents are encoded.
func Marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into literal characters. Escaped
// backslashes are skipped, so a literal "\\u2028" in a value is kept.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}

		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}

		out = append(out, c, data[i+1])
		i++
	}
	return out
}

// Write generates the document and writes it atomically to path.
func Write(path string, records []types.Record, opts Options) error {
	data, err := Generate(records, opts)
	if err != nil {
		return err
	}

	mode := opts.FileMode
	if mode == 0 {
		mode = DefaultOptions().FileMode
	}

	if err := utils.WriteFileAtomic(path, data, mode); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
