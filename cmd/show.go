// =============================================================================
// Master Data Converter - Show Command
// =============================================================================
//
// COMMAND USAGE:
//   masterdata show <pa|mda> <json-file> <company-id>
//
// Prints the first record with the given company id from a document written
// by the conversion. Exits non-zero when no record matches.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/masterdata-converter/internal/catalog"
	"github.com/ginjaninja78/masterdata-converter/internal/jsonwriter"
	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show <pa|mda> <json-file> <company-id>",
	Short: "Print one record from a generated JSON file",
	Args: cobra.MatchAll(cobra.ExactArgs(3), func(cmd *cobra.Command, args []string) error {
		_, err := types.ParseRecordType(args[0])
		return err
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	recordType, err := types.ParseRecordType(args[0])
	if err != nil {
		return err
	}
	file, companyID := args[1], args[2]

	var paFile, mdaFile string
	if recordType == types.PermissionAdministratorType {
		paFile = file
	} else {
		mdaFile = file
	}

	cat, err := catalog.Load(cmd.Context(), paFile, mdaFile)
	if err != nil {
		return err
	}

	record, err := cat.Find(recordType, companyID)
	if err != nil {
		return err
	}

	data, err := jsonwriter.Marshal(record, appConfig.Output.Indent)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
