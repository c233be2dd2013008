package model

import (
	"time"

	"learning-platform-api/internal/domain"

	"github.com/google/uuid"
)

// GroupModerators is the persistent group whose members may mutate any
// course or lesson regardless of ownership.
const GroupModerators = "moderators"

// User is a domain entity representing a platform account.
// Group membership is loaded from the database on every request; it is never
// cached in-process, so a revoked moderator loses access immediately.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Phone        string
	City         string
	IsStaff      bool // admin: bypasses all ownership checks
	Groups       []string
	RegisteredAt time.Time
}

func NewUser(id, email, passwordHash string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if email == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// IsModerator reports membership in the moderators group.
func (u *User) IsModerator() bool {
	if u == nil {
		return false
	}
	for _, g := range u.Groups {
		if g == GroupModerators {
			return true
		}
	}
	return false
}
