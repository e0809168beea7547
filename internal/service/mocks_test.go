package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByIDAndAuthorEmail(
	ctx context.Context,
	id uuid.UUID,
	authorEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, id, authorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) ExistsByTitleAndAuthorEmail(
	ctx context.Context,
	title, authorEmail string,
) (bool, error) {
	args := m.Called(ctx, title, authorEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) AddWorker(ctx context.Context, taskID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *MockTaskStore) RemoveWorker(ctx context.Context, taskID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskStore) ListByAuthorEmail(
	ctx context.Context,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	args := m.Called(ctx, email, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.TaskPage), args.Error(1)
}

func (m *MockTaskStore) ListByWorkerEmail(
	ctx context.Context,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	args := m.Called(ctx, email, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.TaskPage), args.Error(1)
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	args := m.Called(tx)
	return args.Get(0).(store.TaskStore)
}

// MockTokenService mocks the auth.TokenService interface
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

// MockPasswordHasher mocks the auth.PasswordHasher interface
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
