package usecase

import (
	"context"
	"strings"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/adapter"
	"learning-platform-api/internal/domain/ports/repository"
	"learning-platform-api/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// SessionIDPlaceholder is substituted by the gateway with the real checkout
// session id on the success redirect.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

var _ PaymentUseCase = (*paymentUC)(nil)

type PaymentUseCase interface {
	// StartCheckout registers product, price and checkout session with the
	// gateway and persists an unpaid payment. Returns the payment and the
	// hosted payment-page URL.
	StartCheckout(ctx context.Context, actor *model.User, courseID, successURL, cancelURL string) (*model.Payment, string, error)
	// ConfirmBySession marks the matching payment paid. Unknown or already
	// paid sessions are not errors; replayed callbacks must stay cheap.
	ConfirmBySession(ctx context.Context, sessionID string) error
	// CreateManual records a cash/transfer payment.
	CreateManual(ctx context.Context, actor *model.User, courseID, lessonID *string, amount int64, method model.PaymentMethod) (*model.Payment, error)
	// List returns payments visible to the actor, filtered and ordered.
	List(ctx context.Context, actor *model.User, filter repository.PaymentFilter) ([]*model.Payment, error)
}

type paymentUC struct {
	payments repository.PaymentRepository
	courses  repository.CourseRepository
	lessons  repository.LessonRepository
	gateway  adapter.CheckoutGateway
	currency string
	log      *zerolog.Logger
}

func NewPaymentUseCase(
	payments repository.PaymentRepository,
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
	gateway adapter.CheckoutGateway,
	currency string,
	log *zerolog.Logger,
) *paymentUC {
	return &paymentUC{payments: payments, courses: courses, lessons: lessons, gateway: gateway, currency: currency, log: log}
}

func (u *paymentUC) StartCheckout(ctx context.Context, actor *model.User, courseID, successURL, cancelURL string) (*model.Payment, string, error) {
	if actor.IsZero() {
		return nil, "", domain.ErrUnauthenticated
	}
	course, err := u.courses.FindByID(ctx, nil, courseID)
	if err != nil {
		return nil, "", err
	}

	productID, err := u.gateway.CreateProduct(ctx, course.Name, course.Description)
	if err != nil {
		return nil, "", err
	}
	// The gateway charges in minor units; an absent price checks out as zero.
	amountMinor := course.PriceOrZero() * 100
	priceID, err := u.gateway.CreatePrice(ctx, productID, amountMinor, u.currency)
	if err != nil {
		return nil, "", err
	}
	if !strings.Contains(successURL, SessionIDPlaceholder) {
		successURL += "?session_id=" + SessionIDPlaceholder
	}
	session, err := u.gateway.CreateCheckoutSession(ctx, priceID, successURL, cancelURL)
	if err != nil {
		return nil, "", err
	}

	// Persist only after all three gateway calls succeed so a gateway
	// failure never leaves a dangling payment row behind.
	p := &model.Payment{
		ID:            model.NewPaymentID(),
		UserID:        actor.ID,
		PaidCourseID:  &course.ID,
		Amount:        course.PriceOrZero(),
		Method:        model.PaymentMethodStripe,
		PaymentDate:   timeNow(),
		ProductID:     productID,
		PriceID:       priceID,
		SessionID:     session.ID,
		PaymentLink:   session.URL,
		Paid:          false,
		GatewayStatus: model.GatewayStatusUnpaid,
	}
	if err := u.payments.Save(ctx, nil, p); err != nil {
		return nil, "", err
	}
	metrics.IncPayment("initiated")
	u.log.Info().Str("payment_id", p.ID).Str("session_id", session.ID).Int64("amount_minor", amountMinor).Msg("checkout started")
	return p, session.URL, nil
}

func (u *paymentUC) ConfirmBySession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	updated, err := u.payments.MarkPaidBySession(ctx, nil, sessionID)
	if err != nil {
		return err
	}
	if updated {
		metrics.IncPayment("paid")
		u.log.Info().Str("session_id", sessionID).Msg("payment confirmed")
	} else {
		u.log.Debug().Str("session_id", sessionID).Msg("success callback with no matching payment")
	}
	return nil
}

func (u *paymentUC) CreateManual(ctx context.Context, actor *model.User, courseID, lessonID *string, amount int64, method model.PaymentMethod) (*model.Payment, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	p, err := model.NewManualPayment(actor.ID, courseID, lessonID, amount, method)
	if err != nil {
		return nil, err
	}
	if courseID != nil {
		if _, err := u.courses.FindByID(ctx, nil, *courseID); err != nil {
			return nil, err
		}
	}
	if lessonID != nil {
		if _, err := u.lessons.FindByID(ctx, nil, *lessonID); err != nil {
			return nil, err
		}
	}
	if err := u.payments.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	metrics.IncPayment("manual")
	return p, nil
}

func (u *paymentUC) List(ctx context.Context, actor *model.User, filter repository.PaymentFilter) ([]*model.Payment, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	// Moderators get no special payment access: only admins see all rows.
	scope := repository.ScopeOwner(actor.ID)
	if actor.IsStaff {
		scope = repository.ScopeAll
	}
	return u.payments.List(ctx, nil, scope, filter)
}
