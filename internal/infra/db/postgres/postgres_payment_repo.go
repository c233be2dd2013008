package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentColumns = `id, user_id, paid_course_id, paid_lesson_id, amount, payment_method, payment_date,
  stripe_product_id, stripe_price_id, stripe_session_id, stripe_payment_link, is_paid, gateway_status`

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (
  id, user_id, paid_course_id, paid_lesson_id, amount, payment_method, payment_date,
  stripe_product_id, stripe_price_id, stripe_session_id, stripe_payment_link, is_paid, gateway_status
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
  amount=$5, stripe_product_id=$8, stripe_price_id=$9, stripe_session_id=$10,
  stripe_payment_link=$11, is_paid=$12, gateway_status=$13;`

	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.PaidCourseID, p.PaidLessonID, p.Amount, p.Method, p.PaymentDate,
		p.ProductID, p.PriceID, p.SessionID, p.PaymentLink, p.Paid, p.GatewayStatus)
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

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) MarkPaidBySession(ctx context.Context, tx repository.Tx, sessionID string) (bool, error) {
	const q = `
UPDATE payments
   SET is_paid=TRUE, gateway_status=$2
 WHERE stripe_session_id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, sessionID, model.GatewayStatusPaid)
	if err != nil {
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() > 0, nil
}

func (r *paymentRepo) List(ctx context.Context, tx repository.Tx, scope repository.Scope, f repository.PaymentFilter) ([]*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments`
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if !scope.All {
		add("user_id=$%d", scope.OwnerID)
	}
	if f.CourseID != "" {
		add("paid_course_id=$%d", f.CourseID)
	}
	if f.LessonID != "" {
		add("paid_lesson_id=$%d", f.LessonID)
	}
	if f.Method != "" {
		add("payment_method=$%d", string(f.Method))
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	if f.DateDesc {
		q += " ORDER BY payment_date DESC;"
	} else {
		q += " ORDER BY payment_date ASC;"
	}

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
	var out []*model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	var method string
	if err := row.Scan(&p.ID, &p.UserID, &p.PaidCourseID, &p.PaidLessonID, &p.Amount, &method, &p.PaymentDate,
		&p.ProductID, &p.PriceID, &p.SessionID, &p.PaymentLink, &p.Paid, &p.GatewayStatus); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	p.Method = model.PaymentMethod(method)
	return p, nil
}
