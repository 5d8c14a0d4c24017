package credits

import "context"

// BalanceStore persists a single credit pool. Debit must be atomic at the
// storage boundary: decrement with a floor of zero, returning the new
// balance, never a read-modify-write pair visible to callers.
type BalanceStore interface {
	Balance(ctx context.Context, ownerID string) (int, error)
	Debit(ctx context.Context, ownerID string, amount int) (int, error)
	Add(ctx context.Context, ownerID string, amount int) (int, error)
}

// UsageEntry records one successful humanization for reporting.
type UsageEntry struct {
	ID          string
	UserID      string
	ProjectID   string
	CreditsUsed int
}

// UsageLogRepo persists usage entries.
type UsageLogRepo interface {
	Insert(ctx context.Context, entry UsageEntry) error
	TotalUsed(ctx context.Context, userID string) (int, error)
}
