package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/trading-engine-go/internal/adapters/logging"
	"github.com/andrescamacho/trading-engine-go/internal/application/common"
	"github.com/andrescamacho/trading-engine-go/internal/infrastructure/config"
)

func TestSlogLogger_WritesJSONWithMetadata(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(logging.NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf))

	// Act
	logger.Log(common.LevelWarning, "Plan pipeline failed", map[string]interface{}{
		"settlement": "Ubersreik",
		"season":     "spring",
	})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "Plan pipeline failed", record["msg"])
	assert.Equal(t, "Ubersreik", record["settlement"])
}

func TestSlogLogger_RespectsConfiguredLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(logging.NewWithWriter(config.LoggingConfig{Level: "warn", Format: "text"}, &buf))

	// Act
	logger.Log(common.LevelDebug, "cache hit", nil)
	logger.Log(common.LevelInfo, "season changed", nil)
	logger.Log(common.LevelError, "pipeline offline", nil)

	// Assert
	out := buf.String()
	assert.NotContains(t, out, "cache hit")
	assert.NotContains(t, out, "season changed")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "pipeline offline")
}

func TestNew_RejectsUnknownOutput(t *testing.T) {
	// Act
	_, _, err := logging.New(config.LoggingConfig{Output: "syslog"})

	// Assert
	assert.Error(t, err)
}
