package common_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finsight/pnl-csv/internal/common"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/table"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	input := "Date ,AMOUNT,REVENUE/EXPENSES\n2024-01-15,1000,revenue\n2024-01-20,400,expenses\n"

	tbl, err := common.ReadTable(strings.NewReader(input), &logging.MockLogger{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "AMOUNT", "REVENUE/EXPENSES"}, tbl.Headers)
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, "1000", tbl.Cell(0, "AMOUNT"))
	assert.Equal(t, "expenses", tbl.Cell(1, "REVENUE/EXPENSES"))
}

func TestReadTable_RaggedRows(t *testing.T) {
	input := "a,b,c\n1\n1,2,3,4\n"

	tbl, err := common.ReadTable(strings.NewReader(input), &logging.MockLogger{})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[1])
}

func TestReadTable_Empty(t *testing.T) {
	_, err := common.ReadTable(strings.NewReader(""), &logging.MockLogger{})
	assert.Error(t, err)
}

func TestReadTableFile_Missing(t *testing.T) {
	_, err := common.ReadTableFile(filepath.Join(t.TempDir(), "absent.csv"), &logging.MockLogger{})
	assert.Error(t, err)
}

func TestWriteTransactionsCSV_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out", "transactions.csv")
	transactions := []models.Transaction{
		{
			Date:         time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Year:         2024,
			Month:        1,
			Amount:       decimal.NewFromInt(1000),
			SignedAmount: decimal.NewFromInt(1000),
			Side:         "revenue",
			AccountGroup: models.GroupRevenue,
			Account:      "4000 Sales",
		},
	}

	require.NoError(t, common.WriteTransactionsCSV(transactions, file, &logging.MockLogger{}))

	tbl, err := common.ReadTableFile(file, &logging.MockLogger{})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "2024-01-15", tbl.Cell(0, "date"))
	assert.Equal(t, "1000", tbl.Cell(0, "signed_amount"))
	assert.Equal(t, "Revenue", tbl.Cell(0, "account_group"))
	assert.Equal(t, "4000 Sales", tbl.Cell(0, "ACCOUNT"))
}

func TestWriteBudgetCSV(t *testing.T) {
	file := filepath.Join(t.TempDir(), "budget.csv")
	budget := []models.BudgetRow{
		{Year: 2024, Month: 0, AccountGroup: models.GroupRevenue, BudgetAmount: decimal.NewFromInt(1200)},
	}

	require.NoError(t, common.WriteBudgetCSV(budget, file, &logging.MockLogger{}))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "year,month,account_group,budget_amount")
	assert.Contains(t, string(data), "2024,0,Revenue,1200")
}

func TestWriteTable_PreservesColumnOrder(t *testing.T) {
	file := filepath.Join(t.TempDir(), "table.csv")
	tbl := table.New([]string{"b", "a"})
	tbl.AppendRow([]string{"2", "1"})

	require.NoError(t, common.WriteTable(tbl, file, &logging.MockLogger{}))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "b,a\n2,1\n", string(data))
}
