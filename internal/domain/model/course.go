package model

import (
	"time"

	"learning-platform-api/internal/domain"

	"github.com/google/uuid"
)

// Course is owned by exactly one user; deleting the owner cascades.
type Course struct {
	ID            string
	Name          string
	Description   string
	Preview       string
	MaterialsLink string
	Price         *int64 // major currency units; nil when the course is not sellable yet
	OwnerID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewCourse(name, ownerID string) (*Course, error) {
	if name == "" || ownerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Course{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PriceOrZero returns the course price, treating an absent price as zero.
func (c *Course) PriceOrZero() int64 {
	if c.Price == nil {
		return 0
	}
	return *c.Price
}

// Lesson belongs to exactly one course and cascades with it.
type Lesson struct {
	ID            string
	CourseID      string
	OwnerID       string
	Name          string
	Description   string
	Preview       string
	VideoLink     string
	MaterialsLink string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewLesson(name, courseID, ownerID string) (*Lesson, error) {
	if name == "" || courseID == "" || ownerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Lesson{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
