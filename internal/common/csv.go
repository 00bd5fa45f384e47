// Package common provides shared tabular I/O used by the loader boundary and
// the reporting commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/table"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Delimiter is the CSV delimiter used for both reading and writing.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// ReadTable reads loosely-structured CSV into a Table. Ragged rows are padded
// or truncated to the header width; rows the CSV reader rejects are skipped
// with a warning rather than failing the whole read.
func ReadTable(r io.Reader, logger logging.Logger) (*table.Table, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1 // allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("input is empty")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	t := table.New(header)
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			logger.WithError(err).Warn("Skipping malformed CSV row")
			continue
		}
		t.AppendRow(record)
	}

	logger.Debug("Read CSV table",
		logging.Field{Key: logging.FieldCount, Value: t.NumRows()})
	return t, nil
}

// ReadTableFile reads a CSV file into a Table.
func ReadTableFile(filePath string, logger logging.Logger) (*table.Table, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return ReadTable(file, logger)
}

// TransactionCSVRow is the canonical transaction row shape for CSV export.
type TransactionCSVRow struct {
	Date         string          `csv:"date"`
	Year         int             `csv:"year"`
	Month        int             `csv:"month"`
	Amount       decimal.Decimal `csv:"AMOUNT"`
	SignedAmount decimal.Decimal `csv:"signed_amount"`
	AccountGroup string          `csv:"account_group"`
	Side         string          `csv:"REVENUE/EXPENSES"`
	ShortClass   string          `csv:"Short_CLASS"`
	Class        string          `csv:"CLASS"`
	Account      string          `csv:"ACCOUNT"`
	Name         string          `csv:"NAME"`
	Project      string          `csv:"PROJECT"`
}

// BudgetCSVRow is the canonical budget row shape for CSV export.
type BudgetCSVRow struct {
	Year         int             `csv:"year"`
	Month        int             `csv:"month"`
	AccountGroup string          `csv:"account_group"`
	BudgetAmount decimal.Decimal `csv:"budget_amount"`
}

// WriteTransactionsCSV writes canonical transactions to a CSV file.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	rows := make([]TransactionCSVRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, TransactionCSVRow{
			Date:         isoDate(tx),
			Year:         tx.Year,
			Month:        tx.Month,
			Amount:       tx.Amount,
			SignedAmount: tx.SignedAmount,
			AccountGroup: string(tx.AccountGroup),
			Side:         tx.Side,
			ShortClass:   tx.ShortClass,
			Class:        tx.Class,
			Account:      tx.Account,
			Name:         tx.Name,
			Project:      tx.Project,
		})
	}
	return writeCSV(rows, csvFile, logger)
}

// WriteBudgetCSV writes the canonical budget table to a CSV file.
func WriteBudgetCSV(budget []models.BudgetRow, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	rows := make([]BudgetCSVRow, 0, len(budget))
	for _, b := range budget {
		rows = append(rows, BudgetCSVRow{
			Year:         b.Year,
			Month:        b.Month,
			AccountGroup: string(b.AccountGroup),
			BudgetAmount: b.BudgetAmount,
		})
	}
	return writeCSV(rows, csvFile, logger)
}

// WriteTable writes a loose table back out as CSV, preserving column order.
func WriteTable(t *table.Table, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Writing CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: t.NumRows()})

	file, err := createOutputFile(csvFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	writer := csv.NewWriter(file)
	writer.Comma = Delimiter
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCSV[T any](rows []T, csvFile string, logger logging.Logger) error {
	logger.Info("Writing CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	file, err := createOutputFile(csvFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func createOutputFile(csvFile string) (*os.File, error) {
	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error creating CSV file: %w", err)
	}
	return file, nil
}

func isoDate(tx models.Transaction) string {
	if tx.Date.IsZero() {
		return ""
	}
	return tx.Date.Format("2006-01-02")
}
