package projects

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
	maxTitleLength   = 200
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Save persists a completed humanization and returns the new project id.
// Overlong titles are truncated rather than rejected so a save never costs
// the caller their output.
func (s *Service) Save(ctx context.Context, userID, title, originalText, humanizedText string, creditsUsed int) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title is required")
	}
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}
	project := Project{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		OriginalText:  originalText,
		HumanizedText: humanizedText,
		CreditsUsed:   creditsUsed,
	}
	if err := s.Repo.Create(ctx, project); err != nil {
		return "", err
	}
	return project.ID, nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Project, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) Get(ctx context.Context, userID, projectID string) (Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return Project{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, projectID)
}

func (s *Service) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := uuid.Parse(projectID); err != nil {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, projectID)
}
