package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ExportFileName", config.ExportFileName},
		{"ExportSheetName", config.ExportSheetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestColumns_Order pins the header layout shared by import and export.
func TestColumns_Order(t *testing.T) {
	assert.Equal(t, []string{
		"FirstName", "LastName", "Phone", "Email",
		"StreetAddress1", "StreetAddress2", "City", "State", "ZipCode",
		"Notes", "Favorite",
	}, config.Columns)
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-AddressBook/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.UndoWindow, 0*time.Second, "UndoWindow must be positive")
	assert.LessOrEqual(t, config.UndoWindow, time.Minute, "Undo should only be offered briefly")

	assert.Greater(t, config.HTTPTimeout, 0*time.Second)
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)

	assert.Greater(t, config.MaxHTTPResponseSize, 0)
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB")
}
