package credits

import (
	"context"
	"errors"
	"strconv"

	badger "github.com/dgraph-io/badger/v4"
)

// GuestSeedCredits is the starting allotment for a guest device.
const GuestSeedCredits = 3

// DefaultUserCredits is the signup allotment for authenticated users,
// matching the column default on users.credits_remaining.
const DefaultUserCredits = 5

// BadgerStore persists guest balances in an embedded Badger KV, keyed by
// guest id. Unknown guests are seeded with the starting allotment on first
// access and never replenished automatically.
type BadgerStore struct {
	db   *badger.DB
	seed int
}

// OpenBadgerStore opens (or creates) the guest credit store at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db, seed: GuestSeedCredits}, nil
}

// Close releases the underlying KV.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Balance(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var balance int
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		balance, err = s.ensure(txn, ownerID)
		return err
	})
	return balance, err
}

// Debit decrements with a floor of zero inside a single Badger transaction,
// so concurrent debits for the same guest serialize at the storage layer.
func (s *BadgerStore) Debit(ctx context.Context, ownerID string, amount int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if amount < 0 {
		amount = 0
	}
	var balance int
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := s.ensure(txn, ownerID)
		if err != nil {
			return err
		}
		balance = current - amount
		if balance < 0 {
			balance = 0
		}
		return txn.Set([]byte(ownerID), []byte(strconv.Itoa(balance)))
	})
	return balance, err
}

func (s *BadgerStore) Add(ctx context.Context, ownerID string, amount int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if amount < 0 {
		amount = 0
	}
	var balance int
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := s.ensure(txn, ownerID)
		if err != nil {
			return err
		}
		balance = current + amount
		return txn.Set([]byte(ownerID), []byte(strconv.Itoa(balance)))
	})
	return balance, err
}

func (s *BadgerStore) ensure(txn *badger.Txn, ownerID string) (int, error) {
	item, err := txn.Get([]byte(ownerID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		if err := txn.Set([]byte(ownerID), []byte(strconv.Itoa(s.seed))); err != nil {
			return 0, err
		}
		return s.seed, nil
	}
	if err != nil {
		return 0, err
	}
	var balance int
	err = item.Value(func(val []byte) error {
		parsed, parseErr := strconv.Atoi(string(val))
		if parseErr != nil {
			// Corrupt counter: fall back to the seed rather than failing the call.
			parsed = s.seed
		}
		balance = parsed
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
