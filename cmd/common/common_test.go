package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"finsight/pnl-csv/cmd/common"
	"finsight/pnl-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadSession(t *testing.T) {
	input := writeFile(t, "tx.csv",
		"Date,AMOUNT,REVENUE/EXPENSES,Short_CLASS,CLASS\n"+
			"2024-01-15,1000,revenue,,\n"+
			"2024-01-20,400,expenses,COS,\n")

	sess, err := common.LoadSession(input, "", "", &logging.MockLogger{})
	require.NoError(t, err)

	ds := sess.Current()
	require.NotNil(t, ds)
	assert.Len(t, ds.Transactions, 2)
	assert.Empty(t, ds.Budget)
}

func TestLoadSession_WithBudget(t *testing.T) {
	input := writeFile(t, "tx.csv",
		"Date,AMOUNT,REVENUE/EXPENSES\n2024-01-15,1000,revenue\n")
	budget := writeFile(t, "budget.csv",
		"DATE,BUDGET,REVENUE/EXPENSES\n2024-01-01,1200,revenue\n")

	sess, err := common.LoadSession(input, budget, "", &logging.MockLogger{})
	require.NoError(t, err)
	assert.Len(t, sess.Current().Budget, 1)
}

func TestLoadSession_MissingInput(t *testing.T) {
	_, err := common.LoadSession("", "", "", &logging.MockLogger{})
	assert.Error(t, err)

	_, err = common.LoadSession(filepath.Join(t.TempDir(), "absent.csv"), "", "", &logging.MockLogger{})
	assert.Error(t, err)
}

func TestOpenOutput(t *testing.T) {
	t.Run("stdout when empty", func(t *testing.T) {
		w, err := common.OpenOutput("")
		require.NoError(t, err)
		assert.NoError(t, w.Close())
	})

	t.Run("creates nested directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "out.txt")
		w, err := common.OpenOutput(path)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})
}

func TestSliceMonths(t *testing.T) {
	assert.Equal(t, []int{7}, common.SliceMonths(0, 7))
	assert.Equal(t, []int{4, 5, 6}, common.SliceMonths(2, 0))
	// A month filter wins over a quarter filter.
	assert.Equal(t, []int{2}, common.SliceMonths(1, 2))
	assert.Nil(t, common.SliceMonths(0, 0))
}
