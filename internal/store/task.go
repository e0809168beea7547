package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every mutation in the service layer goes through GetByIDAndAuthorEmail,
// the fused ownership+existence lookup: a task that exists but belongs to
// someone else surfaces exactly like a task that does not exist, so the
// store never leaks task existence to non-owners.
type TaskStore interface {
	// Create saves a new task, including its (usually empty) worker set.
	// Returns ErrTitleExists if the author already has a task with this title.
	Create(ctx context.Context, task *domain.Task) error

	// GetByIDAndAuthorEmail retrieves a task only when both the ID matches
	// and the task's author has the given email. Returns ErrTaskNotFound
	// otherwise, for a missing ID and for an ownership mismatch alike.
	GetByIDAndAuthorEmail(ctx context.Context, id uuid.UUID, authorEmail string) (*domain.Task, error)

	// ExistsByTitleAndAuthorEmail reports whether the author already has a
	// task with the given title.
	ExistsByTitleAndAuthorEmail(ctx context.Context, title, authorEmail string) (bool, error)

	// Update persists changes to the task's title, comment, status and
	// priority. Workers are managed through AddWorker/RemoveWorker.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns ErrTitleExists if a rename collides with another of the
	// author's tasks.
	Update(ctx context.Context, task *domain.Task) error

	// AddWorker adds the user to the task's worker set.
	// Returns ErrWorkerExists if the user is already a worker.
	AddWorker(ctx context.Context, taskID, userID uuid.UUID) error

	// RemoveWorker removes the user from the task's worker set.
	// Removing a user that is not a worker is a no-op.
	RemoveWorker(ctx context.Context, taskID, userID uuid.UUID) error

	// Delete removes a task and its worker associations.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByAuthorEmail returns one page of tasks authored by the user with
	// the given email, newest first, narrowed by the filter.
	ListByAuthorEmail(ctx context.Context, email string, filter TaskFilter, params PageParams) (*TaskPage, error)

	// ListByWorkerEmail returns one page of tasks on which the user with
	// the given email is a worker, newest first, narrowed by the filter.
	ListByWorkerEmail(ctx context.Context, email string, filter TaskFilter, params PageParams) (*TaskPage, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
