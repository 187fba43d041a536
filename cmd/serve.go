// =============================================================================
// Master Data Converter - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   masterdata serve [--addr :8080] [--pa-file pa.json] [--mda-file mda.json]
//
// Loads the generated documents and serves them read-only over HTTP until
// SIGINT or SIGTERM. Flags override the server section of the configuration.
// At least one document must be configured, and every configured document
// must load, or the server does not start.
//
// =============================================================================

package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/masterdata-converter/internal/catalog"
	"github.com/ginjaninja78/masterdata-converter/internal/server"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	serveAddr    string
	servePAFile  string
	serveMDAFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated master data over a REST API",
	Long: `Serve loads the JSON documents written by the conversion and exposes them:

  GET /api/permission-administrators[/{companyId}]
  GET /api/market-data-administrators[/{companyId}]
  GET /api/metered-data-administrators[/{companyId}]  (same data)
  GET /healthz (status and record counts)
  GET /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr from the config, :8080)")
	serveCmd.Flags().StringVar(&servePAFile, "pa-file", "", "Permission administrator JSON document")
	serveCmd.Flags().StringVar(&serveMDAFile, "mda-file", "", "Market data administrator JSON document")
}

func runServe(cmd *cobra.Command) error {
	settings := appConfig.Server
	if serveAddr != "" {
		settings.Addr = serveAddr
	}
	if servePAFile != "" {
		settings.PermissionAdministratorsFile = servePAFile
	}
	if serveMDAFile != "" {
		settings.MarketDataAdministratorsFile = serveMDAFile
	}

	if settings.PermissionAdministratorsFile == "" && settings.MarketDataAdministratorsFile == "" {
		return errors.New("no master data files configured: use --pa-file and/or --mda-file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(ctx, settings.PermissionAdministratorsFile, settings.MarketDataAdministratorsFile)
	if err != nil {
		return err
	}

	appLogger.Info("catalog loaded",
		"permission_administrators", len(cat.PermissionAdministrators()),
		"market_data_administrators", len(cat.MarketDataAdministrators()),
	)

	return server.New(cat, appLogger.Logger).Run(ctx, settings.Addr)
}
