package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-addressbook/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Letter_a", 'a', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestPhoneEntry_TypedRune(t *testing.T) {
	entry := ui.NewPhoneEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "+1 (555) 123-4567 ext.9")

	assert.Equal(t, "+1 (555) 123-4567 .9", entry.Text, "letters are dropped, phone punctuation kept")
}

func TestFilteredEntry_Keyboard(t *testing.T) {
	assert.Equal(t, mobile.NumberKeyboard, ui.NewNumericalEntry().Keyboard())
	assert.Equal(t, mobile.NumberKeyboard, ui.NewPhoneEntry().Keyboard())
}

// Direct SetText bypasses TypedRune; validation happens separately.
func TestFilteredEntry_DirectSetText(t *testing.T) {
	entry := ui.NewPhoneEntry()
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}
