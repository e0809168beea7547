package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// MockAuthService mocks the service.AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, email, nickname, password string) (string, error) {
	args := m.Called(ctx, email, nickname, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockTaskService mocks the service.TaskService interface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListAuthoredBy(
	ctx context.Context,
	identity auth.Identity,
	params store.PageParams,
) (*store.TaskPage, error) {
	args := m.Called(ctx, identity, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.TaskPage), args.Error(1)
}

func (m *MockTaskService) ListByAuthorEmail(
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

func (m *MockTaskService) ListByWorkerEmail(
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

func (m *MockTaskService) AddTask(
	ctx context.Context,
	identity auth.Identity,
	title, comment string,
	priority domain.TaskPriority,
) (*domain.Task, error) {
	args := m.Called(ctx, identity, title, comment, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) EditTask(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	title, comment string,
) (*domain.Task, error) {
	args := m.Called(ctx, identity, taskID, title, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) ChangeStatus(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	newStatus domain.TaskStatus,
) (*domain.Task, error) {
	args := m.Called(ctx, identity, taskID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) AddWorker(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	workerEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, identity, taskID, workerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) RemoveWorker(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	workerEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, identity, taskID, workerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
) error {
	args := m.Called(ctx, identity, taskID)
	return args.Error(0)
}
