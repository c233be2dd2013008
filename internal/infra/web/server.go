package web

import (
	"net/http"

	"learning-platform-api/internal/config"
	"learning-platform-api/internal/infra/redis"
	"learning-platform-api/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	userUC  usecase.UserUseCase
	course  usecase.CourseUseCase
	lesson  usecase.LessonUseCase
	subs    usecase.SubscriptionUseCase
	pay     usecase.PaymentUseCase
	auth    *AuthManager
	limiter *redis.RateLimiter
	cfg     config.StripeConfig
	authCfg config.AuthConfig
	log     *zerolog.Logger
}

func NewServer(
	userUC usecase.UserUseCase,
	course usecase.CourseUseCase,
	lesson usecase.LessonUseCase,
	subs usecase.SubscriptionUseCase,
	pay usecase.PaymentUseCase,
	auth *AuthManager,
	limiter *redis.RateLimiter,
	stripeCfg config.StripeConfig,
	authCfg config.AuthConfig,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		userUC:  userUC,
		course:  course,
		lesson:  lesson,
		subs:    subs,
		pay:     pay,
		auth:    auth,
		limiter: limiter,
		cfg:     stripeCfg,
		authCfg: authCfg,
		log:     logger,
	}
}

// Router builds the full route table. Gateway redirect endpoints and the
// auth endpoints stay outside the auth middleware; everything else requires
// a valid access token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/users/register/", s.handleRegister)
	r.Post("/users/token/", s.handleToken)
	r.Post("/users/token/refresh/", s.handleTokenRefresh)

	// Gateway redirects arrive without credentials.
	r.Get("/payments/success/", s.handlePaymentSuccess)
	r.Get("/payments/cancel/", s.handlePaymentCancel)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/users/{id}/", s.handleUserProfile)

		r.Get("/courses/", s.handleCourseList)
		r.Post("/courses/", s.handleCourseCreate)
		r.Get("/courses/{id}/", s.handleCourseGet)
		r.Patch("/courses/{id}/", s.handleCourseUpdate)
		r.Delete("/courses/{id}/", s.handleCourseDelete)

		r.Get("/lessons/", s.handleLessonList)
		r.Post("/lessons/", s.handleLessonCreate)
		r.Get("/lessons/{id}/", s.handleLessonGet)
		r.Patch("/lessons/{id}/", s.handleLessonUpdate)
		r.Delete("/lessons/{id}/", s.handleLessonDelete)

		r.Post("/subscription/", s.handleSubscriptionToggle)

		r.Get("/payments/", s.handlePaymentList)
		r.Post("/payments/", s.handlePaymentCreate)
		r.Post("/payments/stripe/{course_id}/", s.handleCheckout)
	})

	return r
}
