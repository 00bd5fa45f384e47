package root_test

import (
	"testing"

	"finsight/pnl-csv/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "pnl-csv", root.Cmd.Use)
	assert.NotEmpty(t, root.Cmd.Short)
	assert.NotEmpty(t, root.Cmd.Long)
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestInit_RegistersPersistentFlags(t *testing.T) {
	root.Init()

	for _, name := range []string{"input", "budget", "output", "format", "year", "quarter", "month"} {
		flag := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "flag %q", name)
	}
	assert.Equal(t, "text", root.Cmd.PersistentFlags().Lookup("format").DefValue)
}
