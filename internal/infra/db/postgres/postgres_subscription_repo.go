package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

// Insert is a single INSERT guarded by the (user_id, course_id) unique
// constraint. Two concurrent inserts for the same pair cannot both succeed;
// the loser sees ErrAlreadyExists, never a crash.
func (r *subscriptionRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (id, user_id, course_id, created_at)
VALUES ($1,$2,$3,$4);`

	_, err := execSQL(ctx, r.pool, tx, q, s.ID, s.UserID, s.CourseID, s.CreatedAt)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return err
		default:
			if isUniqueViolation(err) {
				return domain.ErrAlreadyExists
			}
			return domain.ErrOperationFailed
		}
	}
	return nil
}

func (r *subscriptionRepo) Delete(ctx context.Context, tx repository.Tx, userID, courseID string) (bool, error) {
	const q = `DELETE FROM subscriptions WHERE user_id=$1 AND course_id=$2;`
	tag, err := execSQL(ctx, r.pool, tx, q, userID, courseID)
	if err != nil {
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() > 0, nil
}

func (r *subscriptionRepo) Exists(ctx context.Context, tx repository.Tx, userID, courseID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE user_id=$1 AND course_id=$2);`
	row, err := pickRow(ctx, r.pool, tx, q, userID, courseID)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}

func (r *subscriptionRepo) ListCourseIDsByUser(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	const q = `SELECT course_id FROM subscriptions WHERE user_id=$1;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}
