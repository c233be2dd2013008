package usecase

import (
	"context"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ SubscriptionUseCase = (*subscriptionUC)(nil)

type SubscriptionUseCase interface {
	// Toggle flips the actor's subscription to a course. Returns true when
	// the subscription was added, false when it was removed.
	Toggle(ctx context.Context, actor *model.User, courseID string) (created bool, err error)
}

type subscriptionUC struct {
	subs    repository.SubscriptionRepository
	courses repository.CourseRepository
	log     *zerolog.Logger
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository, courses repository.CourseRepository, log *zerolog.Logger) *subscriptionUC {
	return &subscriptionUC{subs: subs, courses: courses, log: log}
}

func (u *subscriptionUC) Toggle(ctx context.Context, actor *model.User, courseID string) (bool, error) {
	if actor.IsZero() {
		return false, domain.ErrUnauthenticated
	}
	if courseID == "" {
		return false, domain.ErrInvalidArgument
	}
	if _, err := u.courses.FindByID(ctx, nil, courseID); err != nil {
		return false, err
	}

	sub, err := model.NewSubscription(actor.ID, courseID)
	if err != nil {
		return false, err
	}
	// Single atomic INSERT: the unique (user_id, course_id) constraint turns
	// a concurrent double-toggle into ErrAlreadyExists instead of a
	// duplicate row.
	switch err := u.subs.Insert(ctx, nil, sub); err {
	case nil:
		u.log.Info().Str("user_id", actor.ID).Str("course_id", courseID).Msg("subscription added")
		return true, nil
	case domain.ErrAlreadyExists:
		if _, err := u.subs.Delete(ctx, nil, actor.ID, courseID); err != nil {
			return false, err
		}
		u.log.Info().Str("user_id", actor.ID).Str("course_id", courseID).Msg("subscription removed")
		return false, nil
	default:
		return false, err
	}
}
