package humanize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/provider"
)

func newWorkflow(client *fakeClient) (*Service, *credits.MemoryStore, *credits.MemoryStore) {
	users := credits.NewMemoryStore()
	guests := credits.NewSeededMemoryStore(credits.GuestSeedCredits)
	svc := credits.NewService(users, guests, credits.NewMemoryUsageLog())
	poller := NewPoller(client, 30, 5*time.Second, 2*time.Second, 10*time.Second)
	poller.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return NewService(client, svc, poller), users, guests
}

func TestHumanizeHappyPath(t *testing.T) {
	client := &fakeClient{
		credits: provider.Credits{Credits: 100},
		submit:  provider.SubmitResult{Status: "queued", ID: "doc-1"},
		docs:    pendingDocs(2, provider.Document{ID: "doc-1", Output: "rewritten"}),
	}
	workflow, users, _ := newWorkflow(client)
	users.SetBalance("google:1", 5)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Error)
	}
	if resp.Output != "rewritten" {
		t.Fatalf("expected provider output, got %q", resp.Output)
	}
	if resp.CreditsUsed != 1 {
		t.Fatalf("expected flat cost of 1, got %d", resp.CreditsUsed)
	}
	if client.fetches != 3 {
		t.Fatalf("expected 3 fetches for 2 pending + 1 complete, got %d", client.fetches)
	}
	balance, _ := users.Balance(context.Background(), "google:1")
	if balance != 4 {
		t.Fatalf("expected balance 4 after debit, got %d", balance)
	}
}

func TestHumanizeValidationSkipsProvider(t *testing.T) {
	client := &fakeClient{}
	workflow, _, _ := newWorkflow(client)

	resp := workflow.Humanize(context.Background(), Request{Text: "too short"}, credits.IdentityFromUserID("google:1"))

	if resp.Success {
		t.Fatal("expected validation failure")
	}
	if client.checks != 0 || client.submits != 0 || client.fetches != 0 {
		t.Fatalf("validation failure must not touch the provider: checks=%d submits=%d fetches=%d", client.checks, client.submits, client.fetches)
	}
}

func TestHumanizeSubmitErrorNoDebit(t *testing.T) {
	client := &fakeClient{
		credits:   provider.Credits{Credits: 100},
		submitErr: &provider.SubmitError{StatusCode: 500, Body: "oops"},
	}
	workflow, users, _ := newWorkflow(client)
	users.SetBalance("google:1", 5)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if resp.Success {
		t.Fatal("expected failure")
	}
	if client.fetches != 0 {
		t.Fatalf("failed submit must not poll, got %d fetches", client.fetches)
	}
	balance, _ := users.Balance(context.Background(), "google:1")
	if balance != 5 {
		t.Fatalf("failed submit must not debit, balance %d", balance)
	}
}

func TestHumanizeEmptySubmitID(t *testing.T) {
	client := &fakeClient{
		credits: provider.Credits{Credits: 100},
		submit:  provider.SubmitResult{Status: "queued"},
	}
	workflow, _, _ := newWorkflow(client)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if resp.Success || !errors.Is(resp.Err, ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", resp.Err)
	}
}

func TestHumanizeProviderCreditsExhausted(t *testing.T) {
	client := &fakeClient{credits: provider.Credits{Credits: 0}}
	workflow, _, _ := newWorkflow(client)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if resp.Success || !errors.Is(resp.Err, ErrInsufficientProviderCredits) {
		t.Fatalf("expected provider credit failure, got %v", resp.Err)
	}
	if client.submits != 0 {
		t.Fatal("exhausted provider credits must block submission")
	}
}

func TestHumanizeCreditCheckFailureIsNonFatal(t *testing.T) {
	client := &fakeClient{
		creditsErr: errors.New("credits endpoint down"),
		submit:     provider.SubmitResult{Status: "queued", ID: "doc-1"},
		docs:       []provider.Document{{ID: "doc-1", Output: "rewritten"}},
	}
	workflow, users, _ := newWorkflow(client)
	users.SetBalance("google:1", 5)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if !resp.Success {
		t.Fatalf("pre-check failure must not block the workflow: %q", resp.Error)
	}
}

func TestHumanizeTimeoutNoDebit(t *testing.T) {
	client := &fakeClient{
		credits: provider.Credits{Credits: 100},
		submit:  provider.SubmitResult{Status: "queued", ID: "doc-1"},
		docs:    []provider.Document{{ID: "doc-1"}},
	}
	workflow, users, _ := newWorkflow(client)
	users.SetBalance("google:1", 5)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if resp.Success || !errors.Is(resp.Err, ErrProcessingTimeout) {
		t.Fatalf("expected timeout, got %v", resp.Err)
	}
	if client.fetches != 30 {
		t.Fatalf("expected the full 30-attempt budget, got %d", client.fetches)
	}
	balance, _ := users.Balance(context.Background(), "google:1")
	if balance != 5 {
		t.Fatalf("timeout must not debit, balance %d", balance)
	}
}

func TestHumanizeGuestDebitsGuestPool(t *testing.T) {
	client := &fakeClient{
		credits: provider.Credits{Credits: 100},
		submit:  provider.SubmitResult{Status: "queued", ID: "doc-1"},
		docs:    []provider.Document{{ID: "doc-1", Output: "rewritten"}},
	}
	workflow, _, guests := newWorkflow(client)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("guest:device-1"))

	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Error)
	}
	balance, _ := guests.Balance(context.Background(), "guest:device-1")
	if balance != credits.GuestSeedCredits-1 {
		t.Fatalf("expected guest pool debited once, balance %d", balance)
	}
}

func TestHumanizeNeverReturnsGoError(t *testing.T) {
	client := &fakeClient{
		credits:  provider.Credits{Credits: 100},
		submit:   provider.SubmitResult{Status: "queued", ID: "doc-1"},
		fetchErr: errors.New("network down"),
	}
	workflow, _, _ := newWorkflow(client)

	resp := workflow.Humanize(context.Background(), Request{Text: strings.Repeat("a", 80)}, credits.IdentityFromUserID("google:1"))

	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Error == "" {
		t.Fatal("failure must carry a message")
	}
}
