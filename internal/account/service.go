package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"humanizer-backend/internal/projects"
)

// Service migrates a guest's data to an authenticated account. Guest credits
// are deliberately not migrated; the device allotment stays on the device.
type Service struct {
	ProjectRepo projects.Repo
}

type ClaimResult struct {
	MigratedProjects int `json:"migratedProjects"`
}

func NewService(projectRepo projects.Repo) *Service {
	return &Service{ProjectRepo: projectRepo}
}

func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if pg, ok := s.ProjectRepo.(*projects.PGRepo); ok && pg != nil && pg.DB != nil {
		return claimWithTx(ctx, pg.DB, guestUserID, authedUserID)
	}

	count, err := claimProjects(ctx, s.ProjectRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedProjects: count}, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	projectRes, err := tx.ExecContext(ctx, `UPDATE projects SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	projectCount, _ := projectRes.RowsAffected()

	if _, err := tx.ExecContext(ctx, `UPDATE usage_logs SET user_id = $1 WHERE user_id = $2`, authedUserID, guestUserID); err != nil {
		return ClaimResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedProjects: int(projectCount)}, nil
}

type guestProjectClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

func claimProjects(ctx context.Context, repo projects.Repo, guestUserID, authedUserID string) (int, error) {
	if claimer, ok := repo.(guestProjectClaimer); ok {
		return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
	}
	return 0, errors.New("projects repo does not support claim")
}
