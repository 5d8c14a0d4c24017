package projects

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "project not found" }

// Repo persists humanization projects. Deletes are soft; deleted projects
// disappear from every read path.
type Repo interface {
	Create(ctx context.Context, project Project) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Project, error)
	GetByID(ctx context.Context, userID, projectID string) (Project, error)
	Delete(ctx context.Context, userID, projectID string) error
}
