// Package merge handles the upload merge command
package merge

import (
	"finsight/pnl-csv/cmd/common"
	"finsight/pnl-csv/cmd/root"
	internalcommon "finsight/pnl-csv/internal/common"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/upload"

	"github.com/spf13/cobra"
)

var (
	uploadFile string
	mode       string
	asBudget   bool
)

// Cmd represents the merge command
var Cmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge an uploaded file into the dataset",
	Long: `Merge an uploaded transactions or budget file into the current dataset
and write the merged result in canonical form. Append keeps the existing
rows and adds the upload after them, aligned to the columns both sides
share; replace discards the existing rows.`,
	Run: mergeFunc,
}

// Init registers the command-local flags.
func Init() {
	Cmd.Flags().StringVarP(&uploadFile, "upload", "u", "", "File to merge in (CSV or Excel)")
	Cmd.Flags().StringVar(&mode, "mode", string(upload.ModeAppend), "Merge mode: append or replace")
	Cmd.Flags().BoolVar(&asBudget, "as-budget", false, "Treat the upload as budget data instead of transactions")
}

func mergeFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	flags := root.SharedFlags

	if uploadFile == "" {
		log.Fatal("Upload file required (--upload)")
	}
	if flags.Output == "" {
		log.Fatal("Output file required (--output)")
	}

	sess, err := common.LoadSession(flags.Input, flags.Budget, root.Cfg.Classification.OverridesFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}

	uploaded, err := common.ReadTableFile(uploadFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to read upload")
	}

	if asBudget {
		err = sess.ApplyBudget(uploaded, upload.Mode(mode))
	} else {
		err = sess.ApplyTransactions(uploaded, upload.Mode(mode))
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to merge upload")
	}

	ds := sess.Current()
	if asBudget {
		err = internalcommon.WriteBudgetCSV(ds.Budget, flags.Output, log)
	} else {
		err = internalcommon.WriteTransactionsCSV(ds.Transactions, flags.Output, log)
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to write merged dataset")
	}

	log.Info("Merge completed successfully!",
		logging.Field{Key: logging.FieldOutputFile, Value: flags.Output},
		logging.Field{Key: logging.FieldExcluded, Value: ds.ExcludedRows})
}
