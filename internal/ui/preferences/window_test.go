package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"zone25/internal/config"
)

func TestApplyFormCopiesValidValues(t *testing.T) {
	settings := applyForm(config.DefaultSettings(), form{
		Notifications: false,
		TerminalBell:  false,
		StorageDriver: "sqlite",
		StoragePath:   "  /tmp/zone25.db ",
		LogLevel:      "debug",
		Refresh:       "5",
	})

	assert.False(t, settings.Notifications)
	assert.False(t, settings.TerminalBell)
	assert.Equal(t, "sqlite", settings.StorageDriver)
	assert.Equal(t, "/tmp/zone25.db", settings.StoragePath)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, 5*time.Second, settings.RefreshInterval)
}

func TestApplyFormKeepsOldValuesOnInvalidInput(t *testing.T) {
	defaults := config.DefaultSettings()
	settings := applyForm(defaults, form{
		Notifications: true,
		TerminalBell:  true,
		StorageDriver: "",
		LogLevel:      "loud",
		Refresh:       "ten",
	})

	assert.Equal(t, defaults.StorageDriver, settings.StorageDriver)
	assert.Equal(t, defaults.LogLevel, settings.LogLevel)
	assert.Equal(t, defaults.RefreshInterval, settings.RefreshInterval)

	settings = applyForm(defaults, form{Refresh: "600"})
	assert.Equal(t, defaults.RefreshInterval, settings.RefreshInterval)
}

func TestParsePositiveInt(t *testing.T) {
	for input, want := range map[string]int{"1": 1, " 42 ": 42} {
		got, ok := parsePositiveInt(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got)
	}
	for _, input := range []string{"", "0", "-3", "x"} {
		_, ok := parsePositiveInt(input)
		assert.False(t, ok, input)
	}
}
