package web

import (
	"errors"
	"time"

	"learning-platform-api/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// ===== Session/JWT primitives =====

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

type AuthManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthManager(secret string, accessTTL, refreshTTL time.Duration) *AuthManager {
	return &AuthManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type UserClaims struct {
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// TokenPair is what the token endpoints hand out.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// MintPair issues an access/refresh pair for the user. Role decisions are
// never made from the claims alone; the middleware reloads the user row so
// group membership stays current.
func (a *AuthManager) MintPair(u *model.User) (TokenPair, error) {
	access, err := a.mint(u, tokenUseAccess, a.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := a.mint(u, tokenUseRefresh, a.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (a *AuthManager) mint(u *model.User, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email:    u.Email,
		IsStaff:  u.IsStaff,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ParseAccess validates an access token and returns its claims.
func (a *AuthManager) ParseAccess(tok string) (*UserClaims, error) {
	return a.parse(tok, tokenUseAccess)
}

// ParseRefresh validates a refresh token and returns its claims.
func (a *AuthManager) ParseRefresh(tok string) (*UserClaims, error) {
	return a.parse(tok, tokenUseRefresh)
}

func (a *AuthManager) parse(tok, use string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenUse != use {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}
