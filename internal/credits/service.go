package credits

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service is the credit ledger adapter. It selects the pool for an identity
// and owns the only write path to either balance.
type Service struct {
	Users    BalanceStore
	Guests   BalanceStore
	UsageLog UsageLogRepo
}

// NewService constructs a Service over the two pools.
func NewService(users, guests BalanceStore, usageLog UsageLogRepo) *Service {
	return &Service{Users: users, Guests: guests, UsageLog: usageLog}
}

func (s *Service) store(id Identity) BalanceStore {
	if id.Guest {
		return s.Guests
	}
	return s.Users
}

// Balance returns the identity's current balance.
func (s *Service) Balance(ctx context.Context, id Identity) (int, error) {
	return s.store(id).Balance(ctx, id.UserID)
}

// HasSufficientCredit reports whether the identity can start a humanization.
// Sufficient means a positive balance; partial-credit completions are not
// supported.
func (s *Service) HasSufficientCredit(ctx context.Context, id Identity) (bool, error) {
	balance, err := s.Balance(ctx, id)
	if err != nil {
		return false, err
	}
	return balance > 0, nil
}

// Debit charges the identity's pool and returns the new balance. The guest
// pool always decrements by exactly 1 regardless of the requested amount;
// this mirrors the historical behavior and is intentionally preserved.
func (s *Service) Debit(ctx context.Context, id Identity, amount int) (int, error) {
	if id.Guest {
		amount = 1
	}
	return s.store(id).Debit(ctx, id.UserID, amount)
}

// Purchase adds credits to an authenticated balance.
func (s *Service) Purchase(ctx context.Context, id Identity, amount int) (int, error) {
	if id.Guest {
		return 0, ErrGuestPurchase
	}
	if amount <= 0 {
		return 0, errors.New("purchase amount must be positive")
	}
	return s.Users.Add(ctx, id.UserID, amount)
}

// LogUsage records a completed humanization. Failures are reported to the
// caller but must not undo the debit that already happened.
func (s *Service) LogUsage(ctx context.Context, id Identity, projectID string, creditsUsed int) error {
	if s.UsageLog == nil {
		return nil
	}
	return s.UsageLog.Insert(ctx, UsageEntry{
		ID:          uuid.NewString(),
		UserID:      id.UserID,
		ProjectID:   projectID,
		CreditsUsed: creditsUsed,
	})
}

// TotalUsed reports lifetime credits consumed by the identity.
func (s *Service) TotalUsed(ctx context.Context, id Identity) (int, error) {
	if s.UsageLog == nil {
		return 0, nil
	}
	return s.UsageLog.TotalUsed(ctx, id.UserID)
}
