package monthly_test

import (
	"testing"

	"finsight/pnl-csv/cmd/monthly"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyCommand_Metadata(t *testing.T) {
	assert.Equal(t, "monthly", monthly.Cmd.Use)
	assert.Contains(t, monthly.Cmd.Short, "month")
	assert.NotNil(t, monthly.Cmd.Run)
}

func TestMonthlyCommand_Flags(t *testing.T) {
	monthly.Init()

	require.NotNil(t, monthly.Cmd.Flags().Lookup("by"))
	require.NotNil(t, monthly.Cmd.Flags().Lookup("series"))
}
