package credits

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore persists authenticated balances on the users table.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed balance store.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Balance(ctx context.Context, ownerID string) (int, error) {
	const query = `
SELECT credits_remaining FROM users WHERE id = $1 LIMIT 1`
	var balance int
	err := s.DB.QueryRowContext(ctx, query, ownerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}

// Debit decrements the balance with a floor of zero in a single statement, so
// concurrent debits against the same user cannot interleave a stale read.
func (s *PGStore) Debit(ctx context.Context, ownerID string, amount int) (int, error) {
	if amount < 0 {
		amount = 0
	}
	const query = `
UPDATE users
SET credits_remaining = GREATEST(credits_remaining - $1, 0),
    total_credits_used = total_credits_used + LEAST($1, credits_remaining),
    updated_at = now()
WHERE id = $2
RETURNING credits_remaining`
	var balance int
	err := s.DB.QueryRowContext(ctx, query, amount, ownerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (s *PGStore) Add(ctx context.Context, ownerID string, amount int) (int, error) {
	if amount < 0 {
		amount = 0
	}
	const query = `
UPDATE users
SET credits_remaining = credits_remaining + $1,
    updated_at = now()
WHERE id = $2
RETURNING credits_remaining`
	var balance int
	err := s.DB.QueryRowContext(ctx, query, amount, ownerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}
