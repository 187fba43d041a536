// =============================================================================
// Master Data Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the
// pipeline for a single input file, from table parsing to JSON output.
//
// CONVERSION PIPELINE:
//   1. Read the input table (CSV, or XLSX by extension)
//   2. Transform data rows into records (header and blank rows skipped)
//   3. Sort records by (country, company)
//   4. Write the JSON document atomically (skipped on dry runs)
//
// FAILURE MODEL:
//   Every error aborts the run before the output file is touched. A short
//   row fails the whole file; there is no partial-result mode.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ginjaninja78/masterdata-converter/internal/config"
	"github.com/ginjaninja78/masterdata-converter/internal/csvparser"
	"github.com/ginjaninja78/masterdata-converter/internal/jsonwriter"
	"github.com/ginjaninja78/masterdata-converter/internal/logging"
	"github.com/ginjaninja78/masterdata-converter/internal/types"
	"github.com/ginjaninja78/masterdata-converter/internal/validation"
	"github.com/ginjaninja78/masterdata-converter/internal/xlsxparser"
	"github.com/ginjaninja78/masterdata-converter/pkg/utils"
)

// =============================================================================
// CORE TRANSFORMATION
// =============================================================================

// Transform maps the data rows of a table to records.
//
// PARAMETERS:
//   - rows: All table rows. Row 0 is the header and is skipped.
//   - recordType: The record type to build.
//   - connectors: The region connector table used by pa records.
//
// RETURNS:
//   - The records in input order. Never nil. Empty for an unknown record type.
//   - A *validation.RowError for the first row that is too short.
func Transform(rows [][]string, recordType types.RecordType, connectors ConnectorTable) ([]types.Record, error) {
	records := make([]types.Record, 0, len(rows))

	for i, row := range rows {
		if i == 0 || IsBlankRow(row) {
			continue
		}

		if err := validation.ValidateRow(row, i, recordType); err != nil {
			return nil, err
		}

		switch recordType {
		case types.PermissionAdministratorType:
			records = append(records, NewPermissionAdministrator(row, connectors))
		case types.MarketDataAdministratorType:
			records = append(records, NewMarketDataAdministrator(row))
		}
	}

	return records, nil
}

// SortRecords orders records by (country, company) using plain byte-wise
// string comparison. Equal keys keep their input order.
func SortRecords(records []types.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ci, ni := records[i].SortKey()
		cj, nj := records[j].SortKey()
		if ci != cj {
			return ci < cj
		}
		return ni < nj
	})
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the path of the table that was read.
	InputFile string

	// OutputFile is the path of the JSON document.
	// On dry runs it names the file that would have been written.
	OutputFile string

	// RecordType is the record type that was built.
	RecordType types.RecordType

	// DryRun is true when no output was written.
	DryRun bool

	// Records holds the sorted records.
	Records []types.Record

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of rows in the input table, header included.
	RowsRead int

	// BlankRows is the number of data rows skipped because every field was blank.
	BlankRows int

	// RecordsWritten is the number of records in the output document.
	RecordsWritten int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options controls a Converter.
type Options struct {
	// Input controls how the input table is read.
	Input config.InputConfig

	// Output controls how the JSON document is written.
	Output jsonwriter.Options

	// DryRun converts without writing the output file.
	DryRun bool
}

// Converter converts input tables of one record type into JSON documents.
type Converter struct {
	recordType types.RecordType
	connectors ConnectorTable
	opts       Options
	logger     *slog.Logger
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - recordType: The record type to build.
//   - connectors: The region connector table.
//   - opts: Input, output and dry-run settings.
//   - logger: The logger. nil discards log output.
func New(recordType types.RecordType, connectors ConnectorTable, opts Options, logger *slog.Logger) *Converter {
	if connectors == nil {
		connectors = NewConnectorTable(nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Converter{
		recordType: recordType,
		connectors: connectors,
		opts:       opts,
		logger:     logger.With(slog.String("record_type", string(recordType))),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for one file.
//
// PARAMETERS:
//   - inputPath: The CSV or XLSX table to read.
//   - outputPath: The JSON document to write.
//
// RETURNS:
//   - A Result describing the run.
//   - An error if any pipeline step fails. Nothing is written in that case.
func (c *Converter) Run(inputPath, outputPath string) (*Result, error) {
	startTime := time.Now()

	result := &Result{
		InputFile:  inputPath,
		OutputFile: outputPath,
		RecordType: c.recordType,
		DryRun:     c.opts.DryRun,
	}

	// =========================================================================
	// STEP 1: READ INPUT TABLE
	// =========================================================================

	c.logger.Info("processing file", slog.String("input", inputPath))

	table, err := c.ReadTable(inputPath)
	if err != nil {
		return nil, err
	}
	result.Stats.RowsRead = len(table.Rows)

	c.logger.Debug("parsed input table", slog.Int("rows", len(table.Rows)))

	// =========================================================================
	// STEP 2: TRANSFORM ROWS
	// =========================================================================

	if !c.recordType.Known() {
		c.logger.Warn("unknown record type, no records will be produced")
	}

	records, err := Transform(table.Rows, c.recordType, c.connectors)
	if err != nil {
		return nil, fmt.Errorf("failed to transform %s: %w", inputPath, err)
	}
	result.Stats.BlankRows = countBlankRows(table.Rows)

	// =========================================================================
	// STEP 3: SORT RECORDS
	// =========================================================================

	SortRecords(records)
	result.Records = records
	result.Stats.RecordsWritten = len(records)

	// =========================================================================
	// STEP 4: WRITE OUTPUT
	// =========================================================================

	if c.opts.DryRun {
		c.logger.Info("dry run, output not written", slog.String("output", outputPath))
	} else {
		if err := jsonwriter.Write(outputPath, records, c.opts.Output); err != nil {
			return nil, err
		}
		c.logger.Debug("wrote output", slog.String("output", outputPath))
	}

	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("conversion complete",
		slog.Int("rows", result.Stats.RowsRead),
		slog.Int("blank_rows", result.Stats.BlankRows),
		slog.Int("records", result.Stats.RecordsWritten),
		slog.Duration("duration", result.Stats.ProcessingTime),
	)

	return result, nil
}

// ReadTable reads an input table, choosing the parser by file extension.
func (c *Converter) ReadTable(path string) (*types.Table, error) {
	if size, err := utils.GetFileSize(path); err == nil {
		c.logger.Debug("reading input", slog.String("path", path), slog.Int64("bytes", size))
	}

	switch utils.DetectInputFormat(path) {
	case utils.FormatXLSX:
		return xlsxparser.Parse(path, c.opts.Input.Sheet)
	default:
		return csvparser.Parse(path, c.opts.Input)
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func countBlankRows(rows [][]string) int {
	count := 0
	for i, row := range rows {
		if i > 0 && IsBlankRow(row) {
			count++
		}
	}
	return count
}
