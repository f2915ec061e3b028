package bootstrap

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/config"
)

func Test_parseLevel(t *testing.T) {
	testCases := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{name: "Debug", level: "debug", expected: slog.LevelDebug},
		{name: "Warn", level: "warn", expected: slog.LevelWarn},
		{name: "Error", level: "error", expected: slog.LevelError},
		{name: "Info", level: "info", expected: slog.LevelInfo},
		{name: "Unknown falls back to info", level: "loud", expected: slog.LevelInfo},
		{name: "Empty falls back to info", level: "", expected: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.level))
		})
	}
}

func Test_NewApp(t *testing.T) {
	// given
	cfg := &config.Config{}
	cfg.API.BaseURL = "api.example.com"
	cfg.Catalog.PageSize = 12

	// when
	app, err := NewApp(cfg, NewLogger("info"))

	// then: every collaborator is constructed and shared
	require.NoError(t, err)
	assert.NotNil(t, app.Session)
	assert.NotNil(t, app.Cache)
	assert.NotNil(t, app.Products)
	assert.NotNil(t, app.Exports)
	assert.NotNil(t, app.Imports)
	assert.Equal(t, 12, app.PageSize)
}

func Test_NewApp_RejectsBadBaseURL(t *testing.T) {
	// given
	cfg := &config.Config{}
	cfg.API.BaseURL = "https://"

	// when
	app, err := NewApp(cfg, NewLogger("info"))

	// then
	require.Error(t, err)
	assert.Nil(t, app)
}
