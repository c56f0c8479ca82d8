package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Next  int
	Err   error
	mu    sync.Mutex
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: fmt.Sprintf("user-%d", s.Next), Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PaymentOrderRepositoryStub allows tests to customize order store behaviour.
type PaymentOrderRepositoryStub struct {
	CreateFn  func(context.Context, *model.PaymentOrder) (*model.PaymentOrder, bool, error)
	GetFn     func(context.Context, string) (*model.PaymentOrder, error)
	ListFn    func(context.Context, string) ([]model.PaymentOrder, error)
	CASFn     func(context.Context, string, model.OrderStatus, model.OrderStatus, string) (*model.PaymentOrder, bool, error)
	PendingFn func(context.Context, int) ([]model.PaymentOrder, error)

	Created []*model.PaymentOrder
}

// CreateIfAbsent records the order and returns it as created by default.
func (s *PaymentOrderRepositoryStub) CreateIfAbsent(ctx context.Context, order *model.PaymentOrder) (*model.PaymentOrder, bool, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return order, true, nil
}

func (s *PaymentOrderRepositoryStub) Get(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentOrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.PaymentOrder, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

func (s *PaymentOrderRepositoryStub) CompareAndSwapStatus(ctx context.Context, orderID string, from, to model.OrderStatus, paymentID string) (*model.PaymentOrder, bool, error) {
	if s.CASFn != nil {
		return s.CASFn(ctx, orderID, from, to, paymentID)
	}
	return nil, false, nil
}

func (s *PaymentOrderRepositoryStub) SelectPendingEntitlements(ctx context.Context, limit int) ([]model.PaymentOrder, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	return nil, nil
}

// BalanceRepositoryStub lets tests control balance data.
type BalanceRepositoryStub struct {
	GetSummaryFn func(context.Context, string) (*model.BalanceSummary, error)
	GrantFn      func(context.Context, string) (bool, error)
	Summary      *model.BalanceSummary
}

// GetSummary returns configured summary or default error.
func (s *BalanceRepositoryStub) GetSummary(ctx context.Context, userID string) (*model.BalanceSummary, error) {
	if s.GetSummaryFn != nil {
		return s.GetSummaryFn(ctx, userID)
	}
	if s.Summary == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Summary, nil
}

// GrantEntitlement applies override when provided.
func (s *BalanceRepositoryStub) GrantEntitlement(ctx context.Context, orderID string) (bool, error) {
	if s.GrantFn != nil {
		return s.GrantFn(ctx, orderID)
	}
	return true, nil
}
