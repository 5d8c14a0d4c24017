package provider

import "context"

// Client abstracts the humanization provider. One implementation talks to the
// live Undetectable API; tests substitute fakes.
type Client interface {
	// CheckCredits returns the provider-side credit balance for the
	// configured account. Callers treat failures as non-fatal.
	CheckCredits(ctx context.Context) (Credits, error)
	// Submit queues a document for humanization and returns its id.
	Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error)
	// FetchDocument retrieves the current state of a submitted document.
	FetchDocument(ctx context.Context, id string) (Document, error)
}

// Credits is the provider account balance.
type Credits struct {
	BaseCredits  int `json:"baseCredits"`
	BoostCredits int `json:"boostCredits"`
	Credits      int `json:"credits"`
}

// SubmitRequest carries provider-vocabulary values; use the Map helpers to
// translate application enums before building one.
type SubmitRequest struct {
	Content     string `json:"content"`
	Readability string `json:"readability"`
	Purpose     string `json:"purpose"`
	Strength    string `json:"strength"`
	Model       string `json:"model"`
}

// SubmitResult identifies the queued document.
type SubmitResult struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Document is the provider's unit of work. Output is empty until processing
// completes; Status carries an explicit failure marker when processing fails.
type Document struct {
	ID          string `json:"id"`
	Output      string `json:"output,omitempty"`
	Status      string `json:"status,omitempty"`
	Input       string `json:"input"`
	Readability string `json:"readability"`
	Purpose     string `json:"purpose"`
	CreatedDate string `json:"createdDate"`
}

// Complete reports whether the document has produced output.
func (d Document) Complete() bool {
	return d.Output != ""
}

// Failed reports whether the provider marked the document as failed.
// "no output yet" and "explicit failure" are distinct conditions.
func (d Document) Failed() bool {
	switch d.Status {
	case "failed", "error":
		return true
	}
	return false
}
