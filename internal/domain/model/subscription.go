package model

import (
	"time"

	"learning-platform-api/internal/domain"

	"github.com/google/uuid"
)

// Subscription is a (user, course) pair. The database enforces at most one
// row per pair; deleting the row means "unsubscribed".
type Subscription struct {
	ID        string
	UserID    string
	CourseID  string
	CreatedAt time.Time
}

func NewSubscription(userID, courseID string) (*Subscription, error) {
	if userID == "" || courseID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}, nil
}
