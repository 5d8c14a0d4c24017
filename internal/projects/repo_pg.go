package projects

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, project Project) error {
	const query = `
INSERT INTO projects (id, user_id, title, original_text, humanized_text, credits_used, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.OriginalText,
		project.HumanizedText,
		project.CreditsUsed,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Project, error) {
	const query = `
SELECT id, user_id, title, original_text, humanized_text, credits_used, created_at, updated_at
FROM projects
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.OriginalText,
			&p.HumanizedText,
			&p.CreditsUsed,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, projectID string) (Project, error) {
	const query = `
SELECT id, user_id, title, original_text, humanized_text, credits_used, created_at, updated_at
FROM projects
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
LIMIT 1`
	var p Project
	err := r.DB.QueryRowContext(ctx, query, projectID, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.OriginalText,
		&p.HumanizedText,
		&p.CreditsUsed,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, projectID string) error {
	const query = `
UPDATE projects SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimGuest reassigns a guest's projects to an authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE projects SET user_id = $1, updated_at = now()
WHERE user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
