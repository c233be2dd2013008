package repository

import (
	"context"

	"learning-platform-api/internal/domain/model"
)

type SubscriptionRepository interface {
	// Insert atomically creates the (user, course) row. It returns
	// domain.ErrAlreadyExists when the row is already present; the unique
	// constraint is the sole guard against double-subscription races, so
	// this must be a single statement, never read-then-write.
	Insert(ctx context.Context, tx Tx, s *model.Subscription) error
	// Delete removes the (user, course) row and reports whether one existed.
	Delete(ctx context.Context, tx Tx, userID, courseID string) (bool, error)
	Exists(ctx context.Context, tx Tx, userID, courseID string) (bool, error)
	ListCourseIDsByUser(ctx context.Context, tx Tx, userID string) ([]string, error)
}
