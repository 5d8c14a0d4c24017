package undetectable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"humanizer-backend/internal/provider"
	"humanizer-backend/internal/shared/telemetry"
)

const defaultBaseURL = "https://humanize.undetectable.ai"

// Client implements provider.Client against the Undetectable humanization API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a new Undetectable client.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("provider api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CheckCredits reads the account balance via GET /check-user-credits.
func (c *Client) CheckCredits(ctx context.Context) (provider.Credits, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/check-user-credits", nil)
	if err != nil {
		return provider.Credits{}, err
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Credits{}, fmt.Errorf("provider credits request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.Credits{}, fmt.Errorf("provider credits read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Credits{}, &provider.CreditsError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var credits provider.Credits
	if err := json.Unmarshal(body, &credits); err != nil {
		return provider.Credits{}, &provider.CreditsError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return credits, nil
}

// Submit queues content for humanization via POST /submit.
func (c *Client) Submit(ctx context.Context, submitReq provider.SubmitRequest) (provider.SubmitResult, error) {
	if submitReq.Model == "" {
		submitReq.Model = provider.DefaultModel
	}
	payload, err := json.Marshal(submitReq)
	if err != nil {
		return provider.SubmitResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(payload))
	if err != nil {
		return provider.SubmitResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	telemetry.Info("provider.submit", map[string]any{
		"content_length": len(submitReq.Content),
		"readability":    submitReq.Readability,
		"purpose":        submitReq.Purpose,
		"strength":       submitReq.Strength,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.SubmitResult{}, fmt.Errorf("provider submit request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.SubmitResult{}, fmt.Errorf("provider submit read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.SubmitResult{}, &provider.SubmitError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result provider.SubmitResult
	if err := json.Unmarshal(body, &result); err != nil {
		return provider.SubmitResult{}, &provider.SubmitError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return result, nil
}

// FetchDocument retrieves a submitted document via POST /document.
func (c *Client) FetchDocument(ctx context.Context, id string) (provider.Document, error) {
	payload, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return provider.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/document", bytes.NewReader(payload))
	if err != nil {
		return provider.Document{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Document{}, fmt.Errorf("provider document request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.Document{}, fmt.Errorf("provider document read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Document{}, &provider.FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var doc provider.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return provider.Document{}, &provider.FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return doc, nil
}
