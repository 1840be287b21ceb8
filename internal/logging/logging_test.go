// ABOUTME: Tests for logger construction.
// ABOUTME: Covers formats, level parsing and invalid input.
package logging

import (
	"testing"

	"github.com/harperreed/hoops/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LogConfig
		debug bool
		warn  bool
	}{
		{name: "defaults", cfg: config.LogConfig{}, debug: false, warn: true},
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, debug: true, warn: true},
		{name: "json error", cfg: config.LogConfig{Level: "error", Format: "json"}, debug: false, warn: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.warn, logger.Core().Enabled(zap.WarnLevel))
		})
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
