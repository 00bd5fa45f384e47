// Package xlsxutil reads spreadsheet workbooks into loose tables at the
// ingestion boundary. Only the first sheet (or a named one) is read; the
// first row is taken as the header row.
package xlsxutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/table"

	"github.com/xuri/excelize/v2"
)

// IsSpreadsheet reports whether the file name looks like an Excel workbook.
func IsSpreadsheet(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// ReadTableFile reads one sheet of a workbook into a Table. An empty sheet
// name selects the first sheet.
func ReadTableFile(filePath, sheet string, logger logging.Logger) (*table.Table, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading spreadsheet",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close spreadsheet")
		}
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	t := table.New(rows[0])
	for _, row := range rows[1:] {
		t.AppendRow(row)
	}

	logger.Debug("Read spreadsheet table",
		logging.Field{Key: logging.FieldCount, Value: t.NumRows()})
	return t, nil
}
