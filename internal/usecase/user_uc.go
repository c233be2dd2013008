package usecase

import (
	"context"
	"strings"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// PasswordHasher abstracts bcrypt so tests can swap it out.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type UserUseCase interface {
	// Register creates an account with a unique email.
	Register(ctx context.Context, email, password, phone, city string) (*model.User, error)
	// Authenticate checks credentials and returns the account.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	// Load fetches a user with freshly resolved group membership.
	Load(ctx context.Context, id string) (*model.User, error)
	// Profile returns a user visible to the actor (self or admin).
	Profile(ctx context.Context, actor *model.User, id string) (*model.User, error)
}

type userUC struct {
	users  repository.UserRepository
	hasher PasswordHasher
	log    *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, hasher PasswordHasher, log *zerolog.Logger) *userUC {
	return &userUC{users: users, hasher: hasher, log: log}
}

func (u *userUC) Register(ctx context.Context, email, password, phone, city string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < 8 {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	user, err := model.NewUser("", email, hash)
	if err != nil {
		return nil, err
	}
	user.Phone = phone
	user.City = city
	if err := u.users.Save(ctx, nil, user); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (u *userUC) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.users.FindByEmail(ctx, nil, email)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u.withGroups(ctx, user)
}

func (u *userUC) Load(ctx context.Context, id string) (*model.User, error) {
	user, err := u.users.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return u.withGroups(ctx, user)
}

func (u *userUC) Profile(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsStaff && actor.ID != id {
		return nil, domain.ErrPermissionDenied
	}
	return u.Load(ctx, id)
}

func (u *userUC) withGroups(ctx context.Context, user *model.User) (*model.User, error) {
	groups, err := u.users.Groups(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	user.Groups = groups
	return user, nil
}
