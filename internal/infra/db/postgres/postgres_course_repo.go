package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
)

var _ repository.CourseRepository = (*courseRepo)(nil)

type courseRepo struct{ pool *pgxpool.Pool }

func NewCourseRepo(pool *pgxpool.Pool) *courseRepo {
	return &courseRepo{pool: pool}
}

const courseColumns = `id, name, description, preview, materials_link, price, owner_id, created_at, updated_at`

func (r *courseRepo) Save(ctx context.Context, tx repository.Tx, c *model.Course) error {
	const q = `
INSERT INTO courses (id, name, description, preview, materials_link, price, owner_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  name=$2, description=$3, preview=$4, materials_link=$5, price=$6, updated_at=$9;`

	_, err := execSQL(ctx, r.pool, tx, q, c.ID, c.Name, c.Description, c.Preview, c.MaterialsLink, c.Price, c.OwnerID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return err
		default:
			return domain.ErrOperationFailed
		}
	}
	return nil
}

func (r *courseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanCourse(row)
}

func (r *courseRepo) List(ctx context.Context, tx repository.Tx, scope repository.Scope) ([]*model.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses`
	var args []any
	if !scope.All {
		q += ` WHERE owner_id=$1`
		args = append(args, scope.OwnerID)
	}
	q += ` ORDER BY created_at ASC;`

	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()
	var out []*model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *courseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM courses WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepo) CountLessons(ctx context.Context, tx repository.Tx, courseIDs []string) (map[string]int, error) {
	const q = `
SELECT course_id, COUNT(*)
  FROM lessons
 WHERE course_id = ANY($1)
 GROUP BY course_id;`
	rows, err := queryRows(ctx, r.pool, tx, q, courseIDs)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	m := make(map[string]int)
	for rows.Next() {
		var id string
		var c int
		if err := rows.Scan(&id, &c); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		m[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return m, nil
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Preview, &c.MaterialsLink, &c.Price, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return c, nil
}
