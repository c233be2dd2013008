//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/adapter"
	"learning-platform-api/internal/domain/ports/repository"
)

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu   sync.Mutex
	data map[string]*model.User // by id
	grps map[string][]string    // user id -> group names

	SaveFunc        func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindByIDFunc    func(ctx context.Context, tx repository.Tx, id string) (*model.User, error)
	FindByEmailFunc func(ctx context.Context, tx repository.Tx, email string) (*model.User, error)
	GroupsFunc      func(ctx context.Context, tx repository.Tx, userID string) ([]string, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{data: map[string]*model.User{}, grps: map[string][]string{}}
}

func (r *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Email == u.Email && existing.ID != u.ID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *u
	r.data[u.ID] = &cp
	return nil
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	if r.FindByEmailFunc != nil {
		return r.FindByEmailFunc(ctx, tx, email)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.data {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) Groups(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	if r.GroupsFunc != nil {
		return r.GroupsFunc(ctx, tx, userID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.grps[userID]...)
	sort.Strings(out)
	return out, nil
}

func (r *MockUserRepo) AddToGroup(ctx context.Context, tx repository.Tx, userID, group string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.grps[userID] {
		if g == group {
			return nil
		}
	}
	r.grps[userID] = append(r.grps[userID], group)
	return nil
}

// ---- Mock CourseRepository ----

type MockCourseRepo struct {
	mu   sync.Mutex
	data map[string]*model.Course

	SaveFunc     func(ctx context.Context, tx repository.Tx, c *model.Course) error
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Course, error)
	ListFunc     func(ctx context.Context, tx repository.Tx, scope repository.Scope) ([]*model.Course, error)
	DeleteFunc   func(ctx context.Context, tx repository.Tx, id string) error
}

var _ repository.CourseRepository = (*MockCourseRepo)(nil)

func NewMockCourseRepo() *MockCourseRepo {
	return &MockCourseRepo{data: map[string]*model.Course{}}
}

func (r *MockCourseRepo) Save(ctx context.Context, tx repository.Tx, c *model.Course) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, c)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.data[c.ID] = &cp
	return nil
}

func (r *MockCourseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *MockCourseRepo) List(ctx context.Context, tx repository.Tx, scope repository.Scope) ([]*model.Course, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx, tx, scope)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Course
	for _, c := range r.data {
		if !scope.All && c.OwnerID != scope.OwnerID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MockCourseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if r.DeleteFunc != nil {
		return r.DeleteFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MockCourseRepo) CountLessons(ctx context.Context, tx repository.Tx, courseIDs []string) (map[string]int, error) {
	return map[string]int{}, nil
}

// ---- Mock LessonRepository ----

type MockLessonRepo struct {
	mu   sync.Mutex
	data map[string]*model.Lesson

	SaveFunc     func(ctx context.Context, tx repository.Tx, l *model.Lesson) error
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Lesson, error)
}

var _ repository.LessonRepository = (*MockLessonRepo)(nil)

func NewMockLessonRepo() *MockLessonRepo {
	return &MockLessonRepo{data: map[string]*model.Lesson{}}
}

func (r *MockLessonRepo) Save(ctx context.Context, tx repository.Tx, l *model.Lesson) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, l)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.data[l.ID] = &cp
	return nil
}

func (r *MockLessonRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Lesson, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *MockLessonRepo) List(ctx context.Context, tx repository.Tx, scope repository.Scope) ([]*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Lesson
	for _, l := range r.data {
		if !scope.All && l.OwnerID != scope.OwnerID {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MockLessonRepo) ListByCourse(ctx context.Context, tx repository.Tx, courseID string) ([]*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Lesson
	for _, l := range r.data {
		if l.CourseID == courseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MockLessonRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// ---- Mock SubscriptionRepository ----

type MockSubscriptionRepo struct {
	mu   sync.Mutex
	data map[string]*model.Subscription // key "userID/courseID"

	InsertFunc func(ctx context.Context, tx repository.Tx, s *model.Subscription) error
	DeleteFunc func(ctx context.Context, tx repository.Tx, userID, courseID string) (bool, error)
}

var _ repository.SubscriptionRepository = (*MockSubscriptionRepo)(nil)

func NewMockSubscriptionRepo() *MockSubscriptionRepo {
	return &MockSubscriptionRepo{data: map[string]*model.Subscription{}}
}

func subKey(userID, courseID string) string { return fmt.Sprintf("%s/%s", userID, courseID) }

func (r *MockSubscriptionRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if r.InsertFunc != nil {
		return r.InsertFunc(ctx, tx, s)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := subKey(s.UserID, s.CourseID)
	if _, ok := r.data[k]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *s
	r.data[k] = &cp
	return nil
}

func (r *MockSubscriptionRepo) Delete(ctx context.Context, tx repository.Tx, userID, courseID string) (bool, error) {
	if r.DeleteFunc != nil {
		return r.DeleteFunc(ctx, tx, userID, courseID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := subKey(userID, courseID)
	if _, ok := r.data[k]; !ok {
		return false, nil
	}
	delete(r.data, k)
	return true, nil
}

func (r *MockSubscriptionRepo) Exists(ctx context.Context, tx repository.Tx, userID, courseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.data[subKey(userID, courseID)]
	return ok, nil
}

func (r *MockSubscriptionRepo) ListCourseIDsByUser(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.data {
		if s.UserID == userID {
			out = append(out, s.CourseID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ---- Mock PaymentRepository ----

type MockPaymentRepo struct {
	mu   sync.Mutex
	data map[string]*model.Payment

	SaveFunc              func(ctx context.Context, tx repository.Tx, p *model.Payment) error
	MarkPaidBySessionFunc func(ctx context.Context, tx repository.Tx, sessionID string) (bool, error)
	ListFunc              func(ctx context.Context, tx repository.Tx, scope repository.Scope, f repository.PaymentFilter) ([]*model.Payment, error)
}

var _ repository.PaymentRepository = (*MockPaymentRepo)(nil)

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{data: map[string]*model.Payment{}}
}

func (r *MockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.data[p.ID] = &cp
	return nil
}

func (r *MockPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MockPaymentRepo) MarkPaidBySession(ctx context.Context, tx repository.Tx, sessionID string) (bool, error) {
	if r.MarkPaidBySessionFunc != nil {
		return r.MarkPaidBySessionFunc(ctx, tx, sessionID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.data {
		if p.SessionID == sessionID && !p.Paid {
			p.MarkPaid()
			return true, nil
		}
	}
	return false, nil
}

func (r *MockPaymentRepo) List(ctx context.Context, tx repository.Tx, scope repository.Scope, f repository.PaymentFilter) ([]*model.Payment, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx, tx, scope, f)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Payment
	for _, p := range r.data {
		if !scope.All && p.UserID != scope.OwnerID {
			continue
		}
		if f.CourseID != "" && (p.PaidCourseID == nil || *p.PaidCourseID != f.CourseID) {
			continue
		}
		if f.LessonID != "" && (p.PaidLessonID == nil || *p.PaidLessonID != f.LessonID) {
			continue
		}
		if f.Method != "" && p.Method != f.Method {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.DateDesc {
			return out[i].PaymentDate.After(out[j].PaymentDate)
		}
		return out[i].PaymentDate.Before(out[j].PaymentDate)
	})
	return out, nil
}

// ---- Mock CheckoutGateway ----

type MockGateway struct {
	mu sync.Mutex

	CreateProductFunc         func(ctx context.Context, name, description string) (string, error)
	CreatePriceFunc           func(ctx context.Context, productID string, amountMinor int64, currency string) (string, error)
	CreateCheckoutSessionFunc func(ctx context.Context, priceID, successURL, cancelURL string) (adapter.CheckoutSession, error)
	RetrieveSessionFunc       func(ctx context.Context, sessionID string) (adapter.SessionStatus, error)

	Calls struct {
		Products []string
		Prices   []int64
		Sessions []string // success URLs passed to CreateCheckoutSession
	}
}

var _ adapter.CheckoutGateway = (*MockGateway)(nil)

func (g *MockGateway) Name() string { return "mock" }

func (g *MockGateway) CreateProduct(ctx context.Context, name, description string) (string, error) {
	g.mu.Lock()
	g.Calls.Products = append(g.Calls.Products, name)
	g.mu.Unlock()
	if g.CreateProductFunc != nil {
		return g.CreateProductFunc(ctx, name, description)
	}
	return "prod_1", nil
}

func (g *MockGateway) CreatePrice(ctx context.Context, productID string, amountMinor int64, currency string) (string, error) {
	g.mu.Lock()
	g.Calls.Prices = append(g.Calls.Prices, amountMinor)
	g.mu.Unlock()
	if g.CreatePriceFunc != nil {
		return g.CreatePriceFunc(ctx, productID, amountMinor, currency)
	}
	return "price_1", nil
}

func (g *MockGateway) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (adapter.CheckoutSession, error) {
	g.mu.Lock()
	g.Calls.Sessions = append(g.Calls.Sessions, successURL)
	g.mu.Unlock()
	if g.CreateCheckoutSessionFunc != nil {
		return g.CreateCheckoutSessionFunc(ctx, priceID, successURL, cancelURL)
	}
	return adapter.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *MockGateway) RetrieveSession(ctx context.Context, sessionID string) (adapter.SessionStatus, error) {
	if g.RetrieveSessionFunc != nil {
		return g.RetrieveSessionFunc(ctx, sessionID)
	}
	return adapter.SessionStatus{ID: sessionID, PaymentStatus: "paid"}, nil
}

// ---- Mock TransactionManager ----

// MockTxManager runs the callback with a nil tx; the mocks ignore it anyway.
type MockTxManager struct{}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// ---- Password hasher stub ----

// plainHasher "hashes" by prefixing, which keeps credential tests readable.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// newTestLogger creates a silent zerolog.Logger so test output stays clean.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
