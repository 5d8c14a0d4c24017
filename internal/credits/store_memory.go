package credits

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory BalanceStore used in dev mode and tests.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[string]int
	seed     int
	seedNew  bool
}

// NewMemoryStore builds a store where unknown owners have no balance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[string]int)}
}

// NewSeededMemoryStore builds a store that seeds unknown owners with the
// given starting allotment on first access, like the guest pool.
func NewSeededMemoryStore(seed int) *MemoryStore {
	return &MemoryStore{balances: make(map[string]int), seed: seed, seedNew: true}
}

// SetBalance fixes an owner's balance directly. Test helper.
func (s *MemoryStore) SetBalance(ownerID string, balance int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[ownerID] = balance
}

func (s *MemoryStore) Balance(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(ownerID)
}

func (s *MemoryStore) Debit(ctx context.Context, ownerID string, amount int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if amount < 0 {
		amount = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, err := s.ensureLocked(ownerID)
	if err != nil {
		return 0, err
	}
	balance -= amount
	if balance < 0 {
		balance = 0
	}
	s.balances[ownerID] = balance
	return balance, nil
}

func (s *MemoryStore) Add(ctx context.Context, ownerID string, amount int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if amount < 0 {
		amount = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, err := s.ensureLocked(ownerID)
	if err != nil {
		return 0, err
	}
	balance += amount
	s.balances[ownerID] = balance
	return balance, nil
}

func (s *MemoryStore) ensureLocked(ownerID string) (int, error) {
	balance, ok := s.balances[ownerID]
	if !ok {
		if !s.seedNew {
			return 0, ErrNotFound
		}
		balance = s.seed
		s.balances[ownerID] = balance
	}
	return balance, nil
}
