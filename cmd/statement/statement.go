// Package statement handles the structured P&L statement command
package statement

import (
	"finsight/pnl-csv/cmd/common"
	"finsight/pnl-csv/cmd/root"
	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/report"

	"github.com/spf13/cobra"
)

var byDimension string

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Report a structured profit and loss statement",
	Long: `Report a profit and loss statement for the selected period: trading
income, cost of sales, gross profit, other income, operating expenses and
net profit, with line items grouped by the best available dimension.`,
	Run: statementFunc,
}

// Init registers the command-local flags.
func Init() {
	Cmd.Flags().StringVar(&byDimension, "by", "", "Group statement lines by this dimension (default: best available)")
}

func statementFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	flags := root.SharedFlags

	sess, err := common.LoadSession(flags.Input, flags.Budget, root.Cfg.Classification.OverridesFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}
	ds := sess.Current()
	rows := metrics.PeriodSlice(ds.Transactions, flags.Year, flags.Quarter, flags.Month)

	dim := byDimension
	if dim == "" {
		dim, _ = metrics.PreferredDimension(ds.Dimensions)
	}

	out, err := common.OpenOutput(flags.Output)
	if err != nil {
		log.WithError(err).Fatal("Failed to open output")
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.WithError(err).Warn("Failed to close output")
		}
	}()

	renderer := report.NewRenderer(root.Cfg.Report.Currency)
	if err := renderer.Statement(out, metrics.Statement(rows, dim), report.Format(flags.Format)); err != nil {
		log.WithError(err).Fatal("Failed to render statement")
	}
}
