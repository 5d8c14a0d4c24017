package provider

import "fmt"

// SubmitError is returned when the provider rejects a submission or the
// response body cannot be parsed. It carries the HTTP status and raw body.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("provider submit error: status %d: %s", e.StatusCode, e.Body)
}

// FetchError is the document-retrieval analogue of SubmitError.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("provider fetch error: status %d: %s", e.StatusCode, e.Body)
}

// CreditsError is returned when the provider-side credit check fails. The
// workflow logs these and proceeds rather than blocking the caller.
type CreditsError struct {
	StatusCode int
	Body       string
}

func (e *CreditsError) Error() string {
	return fmt.Sprintf("provider credits check error: status %d: %s", e.StatusCode, e.Body)
}
