package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"finsight/pnl-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverrides_MissingFileIsEmpty(t *testing.T) {
	s := store.NewRuleStore(filepath.Join(t.TempDir(), "absent.yaml"), nil)

	overrides, err := s.LoadOverrides()
	require.NoError(t, err)
	assert.Empty(t, overrides.ShortClass)
}

func TestLoadOverrides_ReadsShortClassCodes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classification.yaml")
	content := "short_class:\n  MKT: OPEX\n  MAT: COGS\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	s := store.NewRuleStore(file, nil)
	overrides, err := s.LoadOverrides()
	require.NoError(t, err)
	assert.Equal(t, "OPEX", overrides.ShortClass["MKT"])
	assert.Equal(t, "COGS", overrides.ShortClass["MAT"])
}

func TestLoadOverrides_RejectsUnknownGroup(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classification.yaml")
	require.NoError(t, os.WriteFile(file, []byte("short_class:\n  MKT: Revenue\n"), 0600))

	s := store.NewRuleStore(file, nil)
	_, err := s.LoadOverrides()
	assert.Error(t, err)
}

func TestLoadOverrides_RejectsMalformedYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classification.yaml")
	require.NoError(t, os.WriteFile(file, []byte("short_class: [broken"), 0600))

	s := store.NewRuleStore(file, nil)
	_, err := s.LoadOverrides()
	assert.Error(t, err)
}

func TestSaveOverrides_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "classification.yaml")
	s := store.NewRuleStore(file, nil)

	err := s.SaveOverrides(store.RuleOverrides{ShortClass: map[string]string{"MKT": "OPEX"}})
	require.NoError(t, err)

	loaded, err := s.LoadOverrides()
	require.NoError(t, err)
	assert.Equal(t, "OPEX", loaded.ShortClass["MKT"])
}
