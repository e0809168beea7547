package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// TaskService provides task management operations.
//
// Every mutation resolves the target through the store's fused
// id+author-email lookup, so only the author can modify or delete a task,
// and a non-owner probing someone else's task ID sees the same
// ErrTaskNotFound as for an ID that never existed.
type TaskService interface {
	// ListAuthoredBy returns one page of the requester's own tasks.
	ListAuthoredBy(ctx context.Context, identity auth.Identity, params store.PageParams) (*store.TaskPage, error)

	// ListByAuthorEmail returns one page of tasks authored by the given
	// user. This is a public read; no authentication is required.
	ListByAuthorEmail(ctx context.Context, email string, filter store.TaskFilter, params store.PageParams) (*store.TaskPage, error)

	// ListByWorkerEmail returns one page of tasks the given user works on.
	// This is a public read; no authentication is required.
	ListByWorkerEmail(ctx context.Context, email string, filter store.TaskFilter, params store.PageParams) (*store.TaskPage, error)

	// AddTask creates a task authored by the requester with status Received
	// and an empty worker set. An empty priority defaults to Low.
	// Returns store.ErrTitleExists if the requester already has a task with
	// this title.
	AddTask(ctx context.Context, identity auth.Identity, title, comment string, priority domain.TaskPriority) (*domain.Task, error)

	// EditTask overwrites the task's title and comment.
	// Returns store.ErrTaskNotFound for a missing task or an ownership
	// mismatch, and store.ErrTitleExists if the rename collides with
	// another of the requester's tasks.
	EditTask(ctx context.Context, identity auth.Identity, taskID uuid.UUID, title, comment string) (*domain.Task, error)

	// ChangeStatus sets the task's status. Any known status may be set
	// directly; there is no transition graph.
	// Returns domain.ErrInvalidStatus for unknown status values.
	ChangeStatus(ctx context.Context, identity auth.Identity, taskID uuid.UUID, newStatus domain.TaskStatus) (*domain.Task, error)

	// AddWorker assigns the user with the given email to the task.
	// Returns store.ErrUserNotFound if no such user exists and
	// store.ErrWorkerExists if they are already assigned.
	AddWorker(ctx context.Context, identity auth.Identity, taskID uuid.UUID, workerEmail string) (*domain.Task, error)

	// RemoveWorker unassigns the user with the given email from the task.
	// Removing a user that is not assigned is a no-op.
	// Returns store.ErrUserNotFound if no such user exists.
	RemoveWorker(ctx context.Context, identity auth.Identity, taskID uuid.UUID, workerEmail string) (*domain.Task, error)

	// DeleteTask removes the task and its worker associations.
	DeleteTask(ctx context.Context, identity auth.Identity, taskID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	db        *sql.DB
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. The database handle is used to
// open transactions for multi-statement writes.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:        db,
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListAuthoredBy implements TaskService.ListAuthoredBy
func (s *taskServiceImpl) ListAuthoredBy(
	ctx context.Context,
	identity auth.Identity,
	params store.PageParams,
) (*store.TaskPage, error) {
	return s.taskStore.ListByAuthorEmail(ctx, identity.Email, store.TaskFilter{}, params)
}

// ListByAuthorEmail implements TaskService.ListByAuthorEmail
func (s *taskServiceImpl) ListByAuthorEmail(
	ctx context.Context,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	return s.taskStore.ListByAuthorEmail(ctx, email, filter, params)
}

// ListByWorkerEmail implements TaskService.ListByWorkerEmail
func (s *taskServiceImpl) ListByWorkerEmail(
	ctx context.Context,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	return s.taskStore.ListByWorkerEmail(ctx, email, filter, params)
}

// AddTask implements TaskService.AddTask
func (s *taskServiceImpl) AddTask(
	ctx context.Context,
	identity auth.Identity,
	title, comment string,
	priority domain.TaskPriority,
) (*domain.Task, error) {
	exists, err := s.taskStore.ExistsByTitleAndAuthorEmail(ctx, title, identity.Email)
	if err != nil {
		s.logger.Error("failed to check title availability",
			"error", err,
			"user_id", identity.UserID)
		return nil, fmt.Errorf("failed to check title availability: %w", err)
	}
	if exists {
		s.logger.Debug("task creation rejected: title already used",
			"user_id", identity.UserID)
		return nil, store.ErrTitleExists
	}

	author, err := s.userStore.GetByEmail(ctx, identity.Email)
	if err != nil {
		s.logger.Error("failed to resolve task author",
			"error", err,
			"user_id", identity.UserID)
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	task, err := domain.NewTask(author, title, comment, priority)
	if err != nil {
		s.logger.Debug("task creation rejected: invalid task data",
			"error", err,
			"user_id", identity.UserID)
		return nil, err
	}

	// The task row and its worker rows must commit together.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"task_id", task.ID,
			"user_id", identity.UserID)
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", identity.UserID)
	return task, nil
}

// EditTask implements TaskService.EditTask
func (s *taskServiceImpl) EditTask(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	title, comment string,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByIDAndAuthorEmail(ctx, taskID, identity.Email)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Comment = comment

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to edit task",
			"error", err,
			"task_id", taskID,
			"user_id", identity.UserID)
		return nil, err
	}

	s.logger.Info("task edited",
		"task_id", taskID,
		"user_id", identity.UserID)
	return task, nil
}

// ChangeStatus implements TaskService.ChangeStatus
func (s *taskServiceImpl) ChangeStatus(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	newStatus domain.TaskStatus,
) (*domain.Task, error) {
	if !newStatus.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.taskStore.GetByIDAndAuthorEmail(ctx, taskID, identity.Email)
	if err != nil {
		return nil, err
	}

	task.Status = newStatus

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to change task status",
			"error", err,
			"task_id", taskID,
			"user_id", identity.UserID)
		return nil, err
	}

	s.logger.Info("task status changed",
		"task_id", taskID,
		"status", string(newStatus),
		"user_id", identity.UserID)
	return task, nil
}

// AddWorker implements TaskService.AddWorker
func (s *taskServiceImpl) AddWorker(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	workerEmail string,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByIDAndAuthorEmail(ctx, taskID, identity.Email)
	if err != nil {
		return nil, err
	}

	worker, err := s.userStore.GetByEmail(ctx, workerEmail)
	if err != nil {
		s.logger.Debug("worker assignment rejected",
			"error", err,
			"task_id", taskID)
		return nil, err
	}

	if task.HasWorker(worker.Email) {
		s.logger.Debug("worker assignment rejected: already assigned",
			"task_id", taskID,
			"worker_id", worker.ID)
		return nil, store.ErrWorkerExists
	}

	if err := s.taskStore.AddWorker(ctx, taskID, worker.ID); err != nil {
		s.logger.Error("failed to add worker",
			"error", err,
			"task_id", taskID,
			"worker_id", worker.ID)
		return nil, err
	}

	task.AddWorker(worker)

	s.logger.Info("worker added",
		"task_id", taskID,
		"worker_id", worker.ID,
		"user_id", identity.UserID)
	return task, nil
}

// RemoveWorker implements TaskService.RemoveWorker
func (s *taskServiceImpl) RemoveWorker(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
	workerEmail string,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByIDAndAuthorEmail(ctx, taskID, identity.Email)
	if err != nil {
		return nil, err
	}

	worker, err := s.userStore.GetByEmail(ctx, workerEmail)
	if err != nil {
		s.logger.Debug("worker removal rejected",
			"error", err,
			"task_id", taskID)
		return nil, err
	}

	if err := s.taskStore.RemoveWorker(ctx, taskID, worker.ID); err != nil {
		s.logger.Error("failed to remove worker",
			"error", err,
			"task_id", taskID,
			"worker_id", worker.ID)
		return nil, err
	}

	task.RemoveWorker(worker.ID)

	s.logger.Info("worker removed",
		"task_id", taskID,
		"worker_id", worker.ID,
		"user_id", identity.UserID)
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(
	ctx context.Context,
	identity auth.Identity,
	taskID uuid.UUID,
) error {
	task, err := s.taskStore.GetByIDAndAuthorEmail(ctx, taskID, identity.Email)
	if err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, task.ID); err != nil {
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", taskID,
			"user_id", identity.UserID)
		return err
	}

	s.logger.Info("task deleted",
		"task_id", taskID,
		"user_id", identity.UserID)
	return nil
}
