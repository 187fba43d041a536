// =============================================================================
// Master Data Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   masterdata <pa|mda> <input> <output>  - Convert a table to JSON
//   masterdata show <pa|mda> <file> <id>  - Print one record
//   masterdata serve                      - Serve records over HTTP
//   masterdata version                    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core logic (parsers, converter, writer, catalog, server)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/masterdata-converter/cmd"
)

func main() {
	cmd.Execute()
}
