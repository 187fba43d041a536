// =============================================================================
// Master Data Converter - Convert
// =============================================================================
//
// The conversion is the root command's own action:
//
//   masterdata <pa|mda> <input-file> <output-file> [flags]
//
// FLAGS:
//   --dry-run : Convert and report counts without writing the output file
//   --sheet   : XLSX sheet to read (default: first sheet)
//
// The record type is validated before the input is opened, so a mistyped
// selector fails fast instead of producing an empty document.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/masterdata-converter/internal/converter"
	"github.com/ginjaninja78/masterdata-converter/internal/jsonwriter"
	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun converts without writing the output file.
var dryRun bool

// sheet selects the XLSX sheet to read.
var sheet string

func init() {
	rootCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Convert and report counts without writing the output file",
	)

	rootCmd.Flags().StringVar(
		&sheet,
		"sheet",
		"",
		"XLSX sheet to read (default: first sheet, or input.sheet from the config)",
	)
}

// convertArgs accepts no arguments (help) or exactly <type> <input> <output>.
func convertArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if err := cobra.ExactArgs(3)(cmd, args); err != nil {
		return err
	}
	_, err := types.ParseRecordType(args[0])
	return err
}

// =============================================================================
// CONVERSION
// =============================================================================

func runConvert(cmd *cobra.Command, args []string) error {
	recordType, err := types.ParseRecordType(args[0])
	if err != nil {
		return err
	}
	inputPath, outputPath := args[1], args[2]

	input := appConfig.Input
	if sheet != "" {
		input.Sheet = sheet
	}

	conv := converter.New(
		recordType,
		converter.NewConnectorTable(appConfig.RegionConnectors),
		converter.Options{
			Input: input,
			Output: jsonwriter.Options{
				Indent:   appConfig.Output.Indent,
				FileMode: appConfig.Output.FileMode,
			},
			DryRun: dryRun,
		},
		appLogger.Logger,
	)

	result, err := conv.Run(inputPath, outputPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.DryRun {
		fmt.Fprintf(out, "Dry run: %d %s records from %s (%d rows, %d blank), %s not written\n",
			result.Stats.RecordsWritten, result.RecordType, result.InputFile,
			result.Stats.RowsRead, result.Stats.BlankRows, result.OutputFile)
		return nil
	}

	fmt.Fprintf(out, "Wrote %d %s records to %s\n",
		result.Stats.RecordsWritten, result.RecordType, result.OutputFile)
	return nil
}
