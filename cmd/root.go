// =============================================================================
// Master Data Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the conversion itself; the other commands work on its output.
//
// COBRA CLI STRUCTURE:
//   rootCmd (masterdata <pa|mda> <input> <output>)
//   ├── showCmd    (masterdata show <pa|mda> <json-file> <company-id>)
//   ├── serveCmd   (masterdata serve)
//   └── versionCmd (masterdata version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration (file + MASTERDATA_* environment)
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/masterdata-converter/internal/config"
	"github.com/ginjaninja78/masterdata-converter/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// appConfig and appLogger are set up before any command runs.
var (
	appConfig *config.Config
	appLogger *logging.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. Called with three arguments it
// converts one input table; called without arguments it prints help.
var rootCmd = &cobra.Command{
	Use:   "masterdata <pa|mda> <input-file> <output-file>",
	Short: "Master Data Converter - Turn administrator tables into sorted JSON",
	Long: `Master Data Converter reads a CSV (or XLSX) table of permission
administrators ("pa") or market data administrators ("mda"), maps every data
row to a normalized record, sorts the records by country and company, and
writes them as a JSON array.

Example Usage:
  masterdata pa permission-administrators.csv pa.json
  masterdata mda market-data-administrators.xlsx mda.json --sheet MDA
  masterdata pa input.csv out.json --dry-run
  masterdata show pa pa.json acme-corp
  masterdata serve --pa-file pa.json --mda-file mda.json`,

	Args:          convertArgs,
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	cobra.OnFinalize(teardown)
}

// setup loads the configuration and builds the logger.
func setup() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	appConfig = cfg
	appLogger = logger

	appLogger.Debug("configuration loaded",
		"config_file", cfgFile,
		"log_level", cfg.Logging.Level,
		"region_connector_overrides", len(cfg.RegionConnectors),
	)

	return nil
}

// teardown releases the log file, if any.
func teardown() {
	if appLogger != nil {
		appLogger.Close()
	}
}
