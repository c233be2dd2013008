package web

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/infra/redis"

	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	IsStaff      bool      `json:"is_staff"`
	Groups       []string  `json:"groups,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Phone:        u.Phone,
		City:         u.City,
		IsStaff:      u.IsStaff,
		Groups:       u.Groups,
		RegisteredAt: u.RegisteredAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}
	user, err := s.userUC.Register(r.Context(), req.Email, req.Password, req.Phone, req.City)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequestField(w, "", "invalid request body")
		return
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	allowed, err := s.limiter.Allow(r.Context(), redis.LoginKey(req.Email, host), s.authCfg.LoginAttempts, s.authCfg.LoginWindow)
	if err != nil {
		// Redis being down must not lock everyone out.
		s.log.Warn().Err(err).Msg("login rate limiter unavailable")
	} else if !allowed {
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "too many login attempts"})
		return
	}

	user, err := s.userUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	pair, err := s.auth.MintPair(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		badRequestField(w, "refresh", "refresh token is required")
		return
	}
	claims, err := s.auth.ParseRefresh(req.Refresh)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid refresh token"})
		return
	}
	// Re-read the account so a deleted or demoted user cannot refresh into
	// stale privileges.
	user, err := s.userUC.Load(r.Context(), claims.Subject)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid refresh token"})
		return
	}
	pair, err := s.auth.MintPair(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	user, err := s.userUC.Profile(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
