package humanize

import (
	"strings"
	"unicode/utf8"
)

// Input length constraints imposed by the live provider.
const (
	MinInputChars = 50
	MaxInputChars = 15000
)

// ValidateInput checks the text against the provider's length constraints.
// It has no side effects and must run before any credit check or network
// call; failed validation guarantees zero provider traffic.
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	count := utf8.RuneCountInString(text)
	if count < MinInputChars {
		return &TooShortError{Needed: MinInputChars - count}
	}
	if count > MaxInputChars {
		return &TooLongError{Excess: count - MaxInputChars}
	}
	return nil
}
