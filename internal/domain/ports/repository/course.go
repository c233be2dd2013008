package repository

import (
	"context"

	"learning-platform-api/internal/domain/model"
)

// Scope parameterizes list queries by the caller's visibility: staff and
// moderators see every row, ordinary users only rows they own.
type Scope struct {
	All     bool
	OwnerID string
}

// ScopeAll is the staff/moderator view.
var ScopeAll = Scope{All: true}

// ScopeOwner restricts a query to rows owned by the given user.
func ScopeOwner(ownerID string) Scope { return Scope{OwnerID: ownerID} }

type CourseRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Course) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Course, error)
	List(ctx context.Context, tx Tx, scope Scope) ([]*model.Course, error)
	Delete(ctx context.Context, tx Tx, id string) error
	// CountLessons returns lesson counts keyed by course id.
	CountLessons(ctx context.Context, tx Tx, courseIDs []string) (map[string]int, error)
}

type LessonRepository interface {
	Save(ctx context.Context, tx Tx, l *model.Lesson) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Lesson, error)
	List(ctx context.Context, tx Tx, scope Scope) ([]*model.Lesson, error)
	ListByCourse(ctx context.Context, tx Tx, courseID string) ([]*model.Lesson, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
