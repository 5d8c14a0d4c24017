package credits

import (
	"context"
	"testing"
)

func newBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadgerStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerSeedsNewGuest(t *testing.T) {
	store := newBadgerStore(t)

	balance, err := store.Balance(context.Background(), "guest:device-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != GuestSeedCredits {
		t.Fatalf("expected seed %d, got %d", GuestSeedCredits, balance)
	}
}

func TestBadgerDebitPersistsAndFloors(t *testing.T) {
	store := newBadgerStore(t)
	ctx := context.Background()

	balance, err := store.Debit(ctx, "guest:device-1", 1)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if balance != GuestSeedCredits-1 {
		t.Fatalf("expected %d, got %d", GuestSeedCredits-1, balance)
	}

	// Exhaust and go past zero; the counter must never go negative.
	for i := 0; i < GuestSeedCredits+2; i++ {
		balance, err = store.Debit(ctx, "guest:device-1", 1)
		if err != nil {
			t.Fatalf("Debit: %v", err)
		}
	}
	if balance != 0 {
		t.Fatalf("expected floor at 0, got %d", balance)
	}

	got, err := store.Balance(ctx, "guest:device-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected persisted 0, got %d", got)
	}
}

func TestBadgerGuestsAreIsolated(t *testing.T) {
	store := newBadgerStore(t)
	ctx := context.Background()

	if _, err := store.Debit(ctx, "guest:device-1", 1); err != nil {
		t.Fatalf("Debit: %v", err)
	}

	other, err := store.Balance(ctx, "guest:device-2")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if other != GuestSeedCredits {
		t.Fatalf("expected untouched guest to keep seed, got %d", other)
	}
}
