// Package kpis handles the headline KPI command
package kpis

import (
	"fmt"

	"finsight/pnl-csv/cmd/common"
	"finsight/pnl-csv/cmd/root"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the kpis command
var Cmd = &cobra.Command{
	Use:   "kpis",
	Short: "Report headline P&L KPIs for a period",
	Long: `Report revenue, cost of sales, gross profit, operating expenses and EBIT
for the selected period, with year-over-year and budget comparisons when
the data allows them.`,
	Run: kpisFunc,
}

func kpisFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	flags := root.SharedFlags

	sess, err := common.LoadSession(flags.Input, flags.Budget, root.Cfg.Classification.OverridesFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}
	ds := sess.Current()

	rows := metrics.PeriodSlice(ds.Transactions, flags.Year, flags.Quarter, flags.Month)
	kpis := metrics.KPIs(rows)

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
	if err := renderer.KPIs(out, kpis, format); err != nil {
		log.WithError(err).Fatal("Failed to render KPIs")
	}

	// Comparison figures only make sense on the human-readable surface;
	// json and csv carry the bare KPI set.
	if format != report.FormatText {
		return
	}

	if flags.Year != 0 {
		prior := metrics.KPIs(metrics.PeriodSlice(ds.Transactions, flags.Year-1, flags.Quarter, flags.Month))
		if !prior.Revenue.IsZero() {
			fmt.Fprintf(out, "Revenue YoY: %+.1f%%\n", metrics.YoYChange(kpis.Revenue, prior.Revenue))
		}
	}

	if len(ds.Budget) > 0 {
		months := common.SliceMonths(flags.Quarter, flags.Month)
		revenueBudget := metrics.BudgetForSlice(ds.Budget, ds.BudgetHasMonths, models.GroupRevenue, flags.Year, months)
		if !revenueBudget.IsZero() {
			variance := metrics.BudgetVariance(kpis.Revenue, revenueBudget)
			fmt.Fprintf(out, "Revenue vs budget: %s (%+.1f%%)\n",
				variance.Variance.StringFixed(2), variance.VariancePct)
		}
		opexBudget := metrics.BudgetForSlice(ds.Budget, ds.BudgetHasMonths, models.GroupOPEX, flags.Year, months)
		if !opexBudget.IsZero() {
			fmt.Fprintf(out, "OPEX budget utilization: %.1f%%\n",
				metrics.BudgetUtilization(rows, opexBudget.Abs(), models.GroupOPEX))
		}
	}

	if ds.ExcludedRows > 0 {
		log.Warn("Some rows were excluded from classification",
			logging.Field{Key: logging.FieldExcluded, Value: ds.ExcludedRows})
	}
}
