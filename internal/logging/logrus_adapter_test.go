package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{
			name:        "debug level with text format",
			level:       "debug",
			format:      "text",
			expectLevel: logrus.DebugLevel,
		},
		{
			name:        "info level with json format",
			level:       "info",
			format:      "json",
			expectLevel: logrus.InfoLevel,
		},
		{
			name:        "invalid level defaults to info",
			level:       "invalid",
			format:      "text",
			expectLevel: logrus.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestLogrusAdapter_FieldsReachOutput(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(base)
	logger.WithField(FieldFile, "data.csv").Info("Loaded file",
		Field{Key: FieldCount, Value: 3})

	out := buf.String()
	assert.Contains(t, out, `"file_path":"data.csv"`)
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, "Loaded file")
}

func TestLogrusAdapter_WithError(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(base)
	logger.WithError(errors.New("boom")).Warn("Something failed")

	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "Something failed")
}

func TestGetLogger_DefaultAndOverride(t *testing.T) {
	original := GetLogger()
	defer SetDefaultLogger(original)

	require.NotNil(t, original)

	mock := &MockLogger{}
	SetDefaultLogger(mock)
	assert.Same(t, Logger(mock), GetLogger())

	// nil is a no-op, not a reset.
	SetDefaultLogger(nil)
	assert.Same(t, Logger(mock), GetLogger())
}

func TestMockLogger_CapturesEntries(t *testing.T) {
	mock := &MockLogger{}
	mock.Info("first", Field{Key: FieldMode, Value: "append"})
	mock.Warn("second")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.Equal(t, "first", mock.Entries[0].Message)
	assert.True(t, mock.HasMessage("second"))
	assert.False(t, mock.HasMessage("third"))
}
