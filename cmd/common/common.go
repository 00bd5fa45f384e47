// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"finsight/pnl-csv/internal/classifier"
	internalcommon "finsight/pnl-csv/internal/common"
	"finsight/pnl-csv/internal/dateutils"
	"finsight/pnl-csv/internal/loader"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/session"
	"finsight/pnl-csv/internal/store"
	"finsight/pnl-csv/internal/table"
	"finsight/pnl-csv/internal/xlsxutil"
)

// LoadSession reads the transaction file and the optional budget file and
// builds the working session around them. overridesFile may be empty to use
// the default classification override locations.
func LoadSession(input, budget, overridesFile string, log logging.Logger) (*session.Session, error) {
	if input == "" {
		return nil, errors.New("input file required (--input)")
	}

	txTable, err := ReadTableFile(input, log)
	if err != nil {
		return nil, err
	}

	var budgetTable *table.Table
	if budget != "" {
		budgetTable, err = ReadTableFile(budget, log)
		if err != nil {
			return nil, err
		}
	}

	ruleStore := store.NewRuleStore(overridesFile, log)
	overrides, err := ruleStore.LoadOverrides()
	if err != nil {
		return nil, err
	}

	sess := session.New(loader.New(classifier.New(overrides), log), log)
	if err := sess.Load(txTable, budgetTable); err != nil {
		return nil, err
	}
	return sess, nil
}

// ReadTableFile reads a raw table from disk, dispatching on the file
// extension between the CSV reader and the Excel reader.
func ReadTableFile(filePath string, log logging.Logger) (*table.Table, error) {
	if xlsxutil.IsSpreadsheet(filePath) {
		return xlsxutil.ReadTableFile(filePath, "", log)
	}
	return internalcommon.ReadTableFile(filePath, log)
}

// OpenOutput opens the report destination: the named file (directories
// created as needed), or stdout when path is empty.
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// SliceMonths lists the calendar months a period filter covers: the single
// month, the quarter's months, or nil for a whole year.
func SliceMonths(quarter, month int) []int {
	if month != 0 {
		return []int{month}
	}
	if quarter != 0 {
		return dateutils.MonthsOfQuarter(quarter)
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
