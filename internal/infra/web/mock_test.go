//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"learning-platform-api/internal/config"
	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
	"learning-platform-api/internal/infra/redis"
	"learning-platform-api/internal/usecase"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// ---- mock UserUseCase ----

type mockUserUC struct {
	RegisterFunc     func(ctx context.Context, email, password, phone, city string) (*model.User, error)
	AuthenticateFunc func(ctx context.Context, email, password string) (*model.User, error)
	LoadFunc         func(ctx context.Context, id string) (*model.User, error)
	ProfileFunc      func(ctx context.Context, actor *model.User, id string) (*model.User, error)
}

var _ usecase.UserUseCase = (*mockUserUC)(nil)

func (m *mockUserUC) Register(ctx context.Context, email, password, phone, city string) (*model.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, phone, city)
	}
	return &model.User{ID: "user-1", Email: email}, nil
}

func (m *mockUserUC) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockUserUC) Load(ctx context.Context, id string) (*model.User, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, id)
	}
	return &model.User{ID: id, Email: "u@example.com"}, nil
}

func (m *mockUserUC) Profile(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, actor, id)
	}
	return &model.User{ID: id, Email: "u@example.com"}, nil
}

// ---- mock CourseUseCase ----

type mockCourseUC struct {
	CreateFunc func(ctx context.Context, actor *model.User, in usecase.CourseInput) (*model.Course, error)
	GetFunc    func(ctx context.Context, actor *model.User, id string) (*usecase.CourseView, error)
	ListFunc   func(ctx context.Context, actor *model.User) ([]*usecase.CourseView, error)
	UpdateFunc func(ctx context.Context, actor *model.User, id string, in usecase.CourseInput) (*model.Course, error)
	DeleteFunc func(ctx context.Context, actor *model.User, id string) error
}

var _ usecase.CourseUseCase = (*mockCourseUC)(nil)

func (m *mockCourseUC) Create(ctx context.Context, actor *model.User, in usecase.CourseInput) (*model.Course, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, in)
	}
	return nil, domain.ErrOperationFailed
}

func (m *mockCourseUC) Get(ctx context.Context, actor *model.User, id string) (*usecase.CourseView, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCourseUC) List(ctx context.Context, actor *model.User) ([]*usecase.CourseView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return []*usecase.CourseView{}, nil
}

func (m *mockCourseUC) Update(ctx context.Context, actor *model.User, id string, in usecase.CourseInput) (*model.Course, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, in)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCourseUC) Delete(ctx context.Context, actor *model.User, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return domain.ErrNotFound
}

// ---- mock LessonUseCase ----

type mockLessonUC struct {
	CreateFunc func(ctx context.Context, actor *model.User, in usecase.LessonInput) (*model.Lesson, error)
	GetFunc    func(ctx context.Context, actor *model.User, id string) (*model.Lesson, error)
	ListFunc   func(ctx context.Context, actor *model.User) ([]*model.Lesson, error)
	UpdateFunc func(ctx context.Context, actor *model.User, id string, in usecase.LessonInput) (*model.Lesson, error)
	DeleteFunc func(ctx context.Context, actor *model.User, id string) error
}

var _ usecase.LessonUseCase = (*mockLessonUC)(nil)

func (m *mockLessonUC) Create(ctx context.Context, actor *model.User, in usecase.LessonInput) (*model.Lesson, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, in)
	}
	return nil, domain.ErrOperationFailed
}

func (m *mockLessonUC) Get(ctx context.Context, actor *model.User, id string) (*model.Lesson, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLessonUC) List(ctx context.Context, actor *model.User) ([]*model.Lesson, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return []*model.Lesson{}, nil
}

func (m *mockLessonUC) Update(ctx context.Context, actor *model.User, id string, in usecase.LessonInput) (*model.Lesson, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, in)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLessonUC) Delete(ctx context.Context, actor *model.User, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return domain.ErrNotFound
}

// ---- mock SubscriptionUseCase ----

type mockSubUC struct {
	ToggleFunc func(ctx context.Context, actor *model.User, courseID string) (bool, error)
}

var _ usecase.SubscriptionUseCase = (*mockSubUC)(nil)

func (m *mockSubUC) Toggle(ctx context.Context, actor *model.User, courseID string) (bool, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, actor, courseID)
	}
	return false, domain.ErrNotFound
}

// ---- mock PaymentUseCase ----

type mockPaymentUC struct {
	StartCheckoutFunc    func(ctx context.Context, actor *model.User, courseID, successURL, cancelURL string) (*model.Payment, string, error)
	ConfirmBySessionFunc func(ctx context.Context, sessionID string) error
	CreateManualFunc     func(ctx context.Context, actor *model.User, courseID, lessonID *string, amount int64, method model.PaymentMethod) (*model.Payment, error)
	ListFunc             func(ctx context.Context, actor *model.User, filter repository.PaymentFilter) ([]*model.Payment, error)
}

var _ usecase.PaymentUseCase = (*mockPaymentUC)(nil)

func (m *mockPaymentUC) StartCheckout(ctx context.Context, actor *model.User, courseID, successURL, cancelURL string) (*model.Payment, string, error) {
	if m.StartCheckoutFunc != nil {
		return m.StartCheckoutFunc(ctx, actor, courseID, successURL, cancelURL)
	}
	return nil, "", domain.ErrNotFound
}

func (m *mockPaymentUC) ConfirmBySession(ctx context.Context, sessionID string) error {
	if m.ConfirmBySessionFunc != nil {
		return m.ConfirmBySessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockPaymentUC) CreateManual(ctx context.Context, actor *model.User, courseID, lessonID *string, amount int64, method model.PaymentMethod) (*model.Payment, error) {
	if m.CreateManualFunc != nil {
		return m.CreateManualFunc(ctx, actor, courseID, lessonID, amount, method)
	}
	return nil, domain.ErrInvalidArgument
}

func (m *mockPaymentUC) List(ctx context.Context, actor *model.User, filter repository.PaymentFilter) ([]*model.Payment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, filter)
	}
	return []*model.Payment{}, nil
}

// ---- fake redis client for the rate limiter ----

type fakeRedis struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error // when set, every call fails
}

var _ redis.Client = (*fakeRedis)(nil)

func newFakeRedis() *fakeRedis { return &fakeRedis{counts: map[string]int64{}} }

func (f *fakeRedis) Ping(ctx context.Context) error { return f.err }

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return f.err
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	return "", redis.Nil
}

func (f *fakeRedis) Incr(ctx context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return f.err
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error { return f.err }

func (f *fakeRedis) Close() error { return nil }

// ---- test server wiring ----

type testDeps struct {
	users   *mockUserUC
	courses *mockCourseUC
	lessons *mockLessonUC
	subs    *mockSubUC
	pay     *mockPaymentUC
	auth    *AuthManager
	redis   *fakeRedis
}

func newTestDeps() *testDeps {
	return &testDeps{
		users:   &mockUserUC{},
		courses: &mockCourseUC{},
		lessons: &mockLessonUC{},
		subs:    &mockSubUC{},
		pay:     &mockPaymentUC{},
		auth:    NewAuthManager("test-jwt-secret", time.Minute, time.Hour),
		redis:   newFakeRedis(),
	}
}

func (d *testDeps) server() *Server {
	stripeCfg := config.StripeConfig{
		SuccessURL: "https://api.example/payments/success/",
		CancelURL:  "https://api.example/payments/cancel/",
	}
	authCfg := config.AuthConfig{
		JWTSecret:     "test-jwt-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		LoginAttempts: 3,
		LoginWindow:   time.Minute,
	}
	return NewServer(d.users, d.courses, d.lessons, d.subs, d.pay, d.auth, redis.NewRateLimiter(d.redis), stripeCfg, authCfg, newTestLogger())
}

// accessToken mints a valid access token for the given user and arranges for
// the middleware's user load to return that user.
func (d *testDeps) accessToken(u *model.User) string {
	d.users.LoadFunc = func(ctx context.Context, id string) (*model.User, error) {
		if id == u.ID {
			return u, nil
		}
		return nil, domain.ErrNotFound
	}
	pair, err := d.auth.MintPair(u)
	if err != nil {
		panic(err)
	}
	return pair.Access
}
