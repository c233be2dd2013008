package model

import (
	"crypto/rand"
	"time"

	"learning-platform-api/internal/domain"

	"github.com/oklog/ulid/v2"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodStripe   PaymentMethod = "stripe"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodStripe:
		return true
	}
	return false
}

const (
	GatewayStatusUnpaid = "unpaid"
	GatewayStatusPaid   = "paid"
)

// Payment references the paid course or the paid lesson, never both.
// Gateway fields are populated only for stripe payments; cash and transfer
// rows keep them empty.
type Payment struct {
	ID            string // ULID, sortable by creation time
	UserID        string
	PaidCourseID  *string
	PaidLessonID  *string
	Amount        int64 // major currency units; gateway calls convert to minor
	Method        PaymentMethod
	PaymentDate   time.Time
	ProductID     string
	PriceID       string
	SessionID     string
	PaymentLink   string
	Paid          bool
	GatewayStatus string
}

// NewPaymentID returns a fresh ULID string.
func NewPaymentID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func NewManualPayment(userID string, courseID, lessonID *string, amount int64, method PaymentMethod) (*Payment, error) {
	if userID == "" || amount <= 0 || !method.Valid() || method == PaymentMethodStripe {
		return nil, domain.ErrInvalidArgument
	}
	if (courseID == nil) == (lessonID == nil) {
		return nil, domain.ErrInvalidArgument
	}
	return &Payment{
		ID:           NewPaymentID(),
		UserID:       userID,
		PaidCourseID: courseID,
		PaidLessonID: lessonID,
		Amount:       amount,
		Method:       method,
		PaymentDate:  time.Now(),
	}, nil
}

// MarkPaid flips the payment to paid. The transition is one-way; marking an
// already-paid payment is a no-op so replayed callbacks stay idempotent.
func (p *Payment) MarkPaid() {
	if p.Paid {
		return
	}
	p.Paid = true
	p.GatewayStatus = GatewayStatusPaid
}
