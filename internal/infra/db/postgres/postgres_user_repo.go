package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (id, email, password_hash, phone, city, is_staff, registered_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  email=$2, password_hash=$3, phone=$4, city=$5, is_staff=$6;`

	_, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Email, u.PasswordHash, u.Phone, u.City, u.IsStaff, u.RegisteredAt)
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

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	const q = `
SELECT id, email, password_hash, phone, city, is_staff, registered_at
  FROM users
 WHERE id=$1;`
	return r.queryOne(ctx, tx, q, id)
}

func (r *userRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	const q = `
SELECT id, email, password_hash, phone, city, is_staff, registered_at
  FROM users
 WHERE email=$1;`
	return r.queryOne(ctx, tx, q, email)
}

func (r *userRepo) Groups(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	const q = `SELECT group_name FROM user_groups WHERE user_id=$1 ORDER BY group_name;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *userRepo) AddToGroup(ctx context.Context, tx repository.Tx, userID, group string) error {
	const q = `
INSERT INTO user_groups (user_id, group_name) VALUES ($1,$2)
ON CONFLICT (user_id, group_name) DO NOTHING;`
	if _, err := execSQL(ctx, r.pool, tx, q, userID, group); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *userRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...any) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}

	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Phone, &u.City, &u.IsStaff, &u.RegisteredAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return u, nil
}
