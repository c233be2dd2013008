package repository

import (
	"context"

	"learning-platform-api/internal/domain/model"
)

// PaymentFilter narrows and orders payment listings. Zero values mean
// "no filter"; DateDesc orders by payment date descending instead of the
// default ascending.
type PaymentFilter struct {
	CourseID string
	LessonID string
	Method   model.PaymentMethod
	DateDesc bool
}

type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	// MarkPaidBySession sets paid=true, status='paid' for the payment whose
	// checkout session matches. Reports whether a row was updated; zero rows
	// (unknown session, or already paid with no change needed) is not an
	// error so replayed callbacks stay idempotent.
	MarkPaidBySession(ctx context.Context, tx Tx, sessionID string) (bool, error)
	List(ctx context.Context, tx Tx, scope Scope, filter PaymentFilter) ([]*model.Payment, error)
}
