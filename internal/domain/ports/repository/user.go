package repository

import (
	"context"

	"learning-platform-api/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	// Groups returns the persistent group names for a user. Evaluated per
	// request; role membership is never cached.
	Groups(ctx context.Context, tx Tx, userID string) ([]string, error)
	AddToGroup(ctx context.Context, tx Tx, userID, group string) error
}
