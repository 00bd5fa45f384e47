// Package monthly handles the month-by-month pivot commands
package monthly

import (
	"fmt"

	"finsight/pnl-csv/cmd/common"
	"finsight/pnl-csv/cmd/root"
	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/report"

	"github.com/spf13/cobra"
)

var (
	byDimension string
	showSeries  bool
)

// Cmd represents the monthly command
var Cmd = &cobra.Command{
	Use:   "monthly",
	Short: "Report the month-by-month P&L pivot",
	Long: `Report the P&L pivoted by calendar month. With --by, pivot one
descriptive dimension against the twelve months of the selected year
instead; with --series, add the monthly revenue flow and its running
total.`,
	Run: monthlyFunc,
}

// Init registers the command-local flags.
func Init() {
	Cmd.Flags().StringVar(&byDimension, "by", "", "Pivot by dimension (ACCOUNT, PROJECT or NAME) instead of by account group")
	Cmd.Flags().BoolVar(&showSeries, "series", false, "Include the monthly revenue flow with running total (text only)")
}

func monthlyFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	flags := root.SharedFlags

	sess, err := common.LoadSession(flags.Input, flags.Budget, root.Cfg.Classification.OverridesFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}
	ds := sess.Current()
	rows := metrics.PeriodSlice(ds.Transactions, flags.Year, flags.Quarter, flags.Month)

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
	format := report.Format(flags.Format)

	if byDimension != "" {
		year := flags.Year
		if year == 0 {
			year = latestYear(ds.Transactions)
		}
		pivot := metrics.PivotByDimension(rows, byDimension, year)
		if err := renderer.Pivot(out, pivot, format); err != nil {
			log.WithError(err).Fatal("Failed to render pivot")
		}
		return
	}

	if err := renderer.Monthly(out, metrics.MonthlyPnL(rows), format); err != nil {
		log.WithError(err).Fatal("Failed to render monthly P&L")
	}

	if showSeries && format == report.FormatText {
		year := flags.Year
		if year == 0 {
			year = latestYear(ds.Transactions)
		}
		series := metrics.MonthlySeries(rows, year, models.GroupRevenue)
		cumulative := metrics.Cumulative(series)
		fmt.Fprintf(out, "\nRevenue flow %d\n", year)
		for m := 0; m < 12; m++ {
			fmt.Fprintf(out, "%02d  %s  (cum %s)\n", m+1,
				series[m].StringFixed(2), cumulative[m].StringFixed(2))
		}
	}
}

func latestYear(rows []models.Transaction) int {
	year := 0
	for _, row := range rows {
		if row.Year > year {
			year = row.Year
		}
	}
	return year
}
