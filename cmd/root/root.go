// Package root contains the root command for the application
package root

import (
	"finsight/pnl-csv/internal/common"
	"finsight/pnl-csv/internal/config"
	"finsight/pnl-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	Input  string
	Budget string
	Output string
	Format string

	Year    int
	Quarter int
	Month   int
}

var (
	// Log is the shared logger instance for commands.
	Log = logging.GetLogger()

	// Cfg is the resolved application configuration, set before any
	// subcommand runs.
	Cfg *config.Config

	// SharedFlags are the flags accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "pnl-csv",
		Short: "A CLI tool to build P&L reports from exported accounting CSV files.",
		Long: `pnl-csv reads exported accounting transactions (CSV or Excel), classifies
each row into Revenue, Cost of Sales or Operating Expenses and reports
KPIs, monthly pivots, top-N breakdowns and a structured P&L statement.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to pnl-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
		},
	}
)

// Init initializes the root command and all flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input transactions file (CSV or Excel)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Budget, "budget", "b", "", "Budget file (CSV or Excel)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "text", "Output format: text, json or csv")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Year, "year", "y", 0, "Filter to one year (0 = all)")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Quarter, "quarter", "q", 0, "Filter to one quarter, 1-4 (0 = all)")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Month, "month", "m", 0, "Filter to one month, 1-12 (0 = all)")
}
