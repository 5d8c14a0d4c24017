package humanize

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates missing or all-whitespace text.
	ErrEmptyInput = errors.New("Input text is required")
	// ErrSubmissionFailed indicates the provider accepted the request but
	// returned no document id.
	ErrSubmissionFailed = errors.New("Failed to submit document for processing")
	// ErrInsufficientProviderCredits indicates the provider-side balance is
	// exhausted.
	ErrInsufficientProviderCredits = errors.New("Insufficient credits. Please purchase more credits to continue.")
	// ErrProcessingFailed indicates the provider reported an explicit
	// failure status for the document.
	ErrProcessingFailed = errors.New("Document processing failed")
	// ErrProcessingTimeout indicates polling exhausted its attempts without
	// the document completing or failing.
	ErrProcessingTimeout = errors.New("Document processing timed out")
)

// TooShortError reports how many characters are still needed.
type TooShortError struct {
	Needed int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("Input text must be at least %d characters long (%d more needed)", MinInputChars, e.Needed)
}

// TooLongError reports how many characters exceed the limit.
type TooLongError struct {
	Excess int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("Input text is too long (%d characters over the %d maximum)", e.Excess, MaxInputChars)
}
