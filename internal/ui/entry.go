package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// FilteredEntry is an Entry that drops typed runes its filter rejects.
// Pasted text bypasses the filter; attach a Validator for that case.
type FilteredEntry struct {
	widget.Entry
	allow func(rune) bool
}

// NewNumericalEntry accepts digits only. Used for the feed port.
func NewNumericalEntry() *FilteredEntry {
	return newFilteredEntry(isDigit)
}

// NewPhoneEntry accepts digits and the punctuation people type in phone
// numbers: "+", "-", "(", ")", "." and space.
func NewPhoneEntry() *FilteredEntry {
	return newFilteredEntry(func(r rune) bool {
		if isDigit(r) {
			return true
		}
		switch r {
		case '+', '-', '(', ')', '.', ' ':
			return true
		}
		return false
	})
}

func newFilteredEntry(allow func(rune) bool) *FilteredEntry {
	e := &FilteredEntry{allow: allow}
	e.ExtendBaseWidget(e)
	return e
}

// TypedRune forwards r only when the filter accepts it.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.allow == nil || e.allow(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
