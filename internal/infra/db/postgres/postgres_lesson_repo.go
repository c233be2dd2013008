package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
)

var _ repository.LessonRepository = (*lessonRepo)(nil)

type lessonRepo struct{ pool *pgxpool.Pool }

func NewLessonRepo(pool *pgxpool.Pool) *lessonRepo {
	return &lessonRepo{pool: pool}
}

const lessonColumns = `id, course_id, owner_id, name, description, preview, video_link, materials_link, created_at, updated_at`

func (r *lessonRepo) Save(ctx context.Context, tx repository.Tx, l *model.Lesson) error {
	const q = `
INSERT INTO lessons (id, course_id, owner_id, name, description, preview, video_link, materials_link, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  course_id=$2, name=$4, description=$5, preview=$6, video_link=$7, materials_link=$8, updated_at=$10;`

	_, err := execSQL(ctx, r.pool, tx, q, l.ID, l.CourseID, l.OwnerID, l.Name, l.Description, l.Preview, l.VideoLink, l.MaterialsLink, l.CreatedAt, l.UpdatedAt)
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

func (r *lessonRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Lesson, error) {
	q := `SELECT ` + lessonColumns + ` FROM lessons WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanLesson(row)
}

func (r *lessonRepo) List(ctx context.Context, tx repository.Tx, scope repository.Scope) ([]*model.Lesson, error) {
	q := `SELECT ` + lessonColumns + ` FROM lessons`
	var args []any
	if !scope.All {
		q += ` WHERE owner_id=$1`
		args = append(args, scope.OwnerID)
	}
	q += ` ORDER BY created_at ASC;`
	return r.queryMany(ctx, tx, q, args...)
}

func (r *lessonRepo) ListByCourse(ctx context.Context, tx repository.Tx, courseID string) ([]*model.Lesson, error) {
	q := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id=$1 ORDER BY created_at ASC;`
	return r.queryMany(ctx, tx, q, courseID)
}

func (r *lessonRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM lessons WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lessonRepo) queryMany(ctx context.Context, tx repository.Tx, sql string, args ...any) ([]*model.Lesson, error) {
	rows, err := queryRows(ctx, r.pool, tx, sql, args...)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()
	var out []*model.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	l := &model.Lesson{}
	if err := row.Scan(&l.ID, &l.CourseID, &l.OwnerID, &l.Name, &l.Description, &l.Preview, &l.VideoLink, &l.MaterialsLink, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return l, nil
}
