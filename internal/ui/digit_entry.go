package ui

import (
	"unicode/utf8"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// DigitEntry is an Entry that only accepts up to MaxDigits decimal digits.
// A MaxDigits of zero leaves the length unbounded.
type DigitEntry struct {
	widget.Entry
	MaxDigits int
}

// NewDigitEntry creates an entry limited to maxDigits digits.
func NewDigitEntry(maxDigits int) *DigitEntry {
	entry := &DigitEntry{MaxDigits: maxDigits}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything but digits, and digits past the limit.
// Pasted text bypasses this filter; the Validator catches it.
func (e *DigitEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && utf8.RuneCountInString(e.Text) >= e.MaxDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard shows the numeric keypad on mobile devices.
func (e *DigitEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
