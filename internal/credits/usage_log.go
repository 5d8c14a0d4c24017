package credits

import (
	"context"
	"database/sql"
	"sync"
)

// MemoryUsageLog keeps usage entries in memory for dev mode and tests.
type MemoryUsageLog struct {
	mu      sync.Mutex
	entries []UsageEntry
}

// NewMemoryUsageLog constructs an empty in-memory usage log.
func NewMemoryUsageLog() *MemoryUsageLog {
	return &MemoryUsageLog{}
}

func (l *MemoryUsageLog) Insert(ctx context.Context, entry UsageEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func (l *MemoryUsageLog) TotalUsed(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, entry := range l.entries {
		if entry.UserID == userID {
			total += entry.CreditsUsed
		}
	}
	return total, nil
}

// PGUsageLog persists usage entries to the usage_logs table.
type PGUsageLog struct {
	DB *sql.DB
}

func (l *PGUsageLog) Insert(ctx context.Context, entry UsageEntry) error {
	const query = `
INSERT INTO usage_logs (id, user_id, project_id, credits_used, created_at)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4, now())`
	_, err := l.DB.ExecContext(ctx, query, entry.ID, entry.UserID, entry.ProjectID, entry.CreditsUsed)
	return err
}

func (l *PGUsageLog) TotalUsed(ctx context.Context, userID string) (int, error) {
	const query = `
SELECT COALESCE(SUM(credits_used), 0) FROM usage_logs WHERE user_id = $1`
	var total int
	if err := l.DB.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
