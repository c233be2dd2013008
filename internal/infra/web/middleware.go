package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/infra/logging"
	"learning-platform-api/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ctxKey int

const ctxUserKey ctxKey = 0

// actorFrom returns the authenticated user stored by authMiddleware, or nil.
func actorFrom(ctx context.Context) *model.User {
	u, _ := ctx.Value(ctxUserKey).(*model.User)
	return u
}

// authMiddleware parses the Bearer access token and loads the user row,
// including group membership, fresh for this request.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := r.Header.Get("Authorization")
		if hdr == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}
		parts := strings.SplitN(hdr, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "malformed authorization header"})
			return
		}
		claims, err := s.auth.ParseAccess(parts[1])
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid token"})
			return
		}
		user, err := s.userUC.Load(r.Context(), claims.Subject)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid token"})
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserKey, user)
		ctx = logging.WithUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with a request id and records latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithRequestID(r.Context(), uuid.NewString())
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.ObserveHTTPRequest(r.Method, route, rec.status, elapsed)
		logging.With(ctx, s.log).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", elapsed).
			Msg("request")
	})
}
