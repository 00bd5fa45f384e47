// Package top handles the top-N dimension breakdown command
package top

import (
	"finsight/pnl-csv/cmd/common"
	"finsight/pnl-csv/cmd/root"
	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/report"

	"github.com/spf13/cobra"
)

var (
	byDimension string
	limit       int
	group       string
)

// Account group names accepted by the --group flag.
var groups = map[string]models.AccountGroup{
	"revenue": models.GroupRevenue,
	"cogs":    models.GroupCOGS,
	"opex":    models.GroupOPEX,
}

// Cmd represents the top command
var Cmd = &cobra.Command{
	Use:   "top",
	Short: "Report the top-N values of a dimension",
	Long: `Rank the values of a descriptive dimension (account, project or name)
by their summed amount within one account group, with the remainder pooled
into Others and the top-5 concentration share.`,
	Run: topFunc,
}

// Init registers the command-local flags.
func Init() {
	Cmd.Flags().StringVar(&byDimension, "by", "", "Dimension to rank (default: best available)")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of entries to list (default from configuration)")
	Cmd.Flags().StringVarP(&group, "group", "g", "revenue", "Account group to rank: revenue, cogs or opex")
}

func topFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	flags := root.SharedFlags

	accountGroup, ok := groups[group]
	if !ok {
		log.WithField("group", group).Fatal("Unknown account group (use revenue, cogs or opex)")
	}

	sess, err := common.LoadSession(flags.Input, flags.Budget, root.Cfg.Classification.OverridesFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}
	ds := sess.Current()

	dim := byDimension
	if dim == "" {
		var available bool
		dim, available = metrics.PreferredDimension(ds.Dimensions)
		if !available {
			log.Fatal("No descriptive dimension available in the dataset")
		}
	}

	n := limit
	if n <= 0 {
		n = root.Cfg.Report.TopN
	}

	rows := metrics.GroupSlice(
		metrics.PeriodSlice(ds.Transactions, flags.Year, flags.Quarter, flags.Month),
		accountGroup)
	breakdown := metrics.TopNByDimension(rows, dim, n)

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
	if err := renderer.TopN(out, breakdown, report.Format(flags.Format)); err != nil {
		log.WithError(err).Fatal("Failed to render breakdown")
	}
}
