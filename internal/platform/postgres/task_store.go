package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/platform/logger"
	"github.com/taskwell/taskwell-api/internal/store"
)

// taskColumns are the task and author columns selected by every task
// query, in scanTask order.
const taskColumns = `
	t.id, t.title, t.comment, t.status, t.priority, t.created_at, t.updated_at,
	u.id, u.nickname, u.email, u.hashed_password, u.role, u.created_at, u.updated_at
`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It saves a new task and its worker associations. Callers that need the
// inserts to be atomic should run this inside a transaction via WithTx.
// Returns store.ErrTitleExists if the author already has a task with this
// title, and store.ErrInvalidEntity if the author row does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, author_id, title, comment, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Author.ID,
		task.Title,
		task.Comment,
		task.Status,
		task.Priority,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate title during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("author_id", task.Author.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
		}
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: author with ID %s not found",
				store.ErrInvalidEntity, task.Author.ID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	for _, worker := range task.Workers {
		if err := s.AddWorker(ctx, task.ID, worker.ID); err != nil {
			return err
		}
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("author_id", task.Author.ID.String()))
	return nil
}

// GetByIDAndAuthorEmail implements store.TaskStore.GetByIDAndAuthorEmail
// The lookup fuses existence and ownership: a task owned by a different
// author is indistinguishable from a task that does not exist, and both
// return store.ErrTaskNotFound.
func (s *PostgresTaskStore) GetByIDAndAuthorEmail(
	ctx context.Context,
	id uuid.UUID,
	authorEmail string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.author_id
		WHERE t.id = $1 AND u.email = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, authorEmail))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for author",
				slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	if err := s.loadWorkers(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ExistsByTitleAndAuthorEmail implements store.TaskStore.ExistsByTitleAndAuthorEmail
// Title comparison is case-insensitive, matching the unique index on
// (author_id, lower(title)).
func (s *PostgresTaskStore) ExistsByTitleAndAuthorEmail(
	ctx context.Context,
	title, authorEmail string,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM tasks t
			JOIN users u ON u.id = t.author_id
			WHERE lower(t.title) = lower($1) AND u.email = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, title, authorEmail).Scan(&exists); err != nil {
		log.Error("failed to check task existence by title",
			slog.String("error", err.Error()))
		return false, err
	}

	return exists, nil
}

// Update implements store.TaskStore.Update
// It persists the task's title, comment, status and priority and refreshes
// the task's UpdatedAt on success. Worker associations are managed through
// AddWorker and RemoveWorker.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, comment = $2, status = $3, priority = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Comment,
		task.Status,
		task.Priority,
		updatedAt,
		task.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate title during task update",
				slog.String("task_id", task.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for update",
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = updatedAt

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// AddWorker implements store.TaskStore.AddWorker
// Returns store.ErrWorkerExists if the user is already assigned, and
// store.ErrInvalidEntity if the task or user row does not exist.
func (s *PostgresTaskStore) AddWorker(ctx context.Context, taskID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO task_workers (task_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := s.db.ExecContext(ctx, query, taskID, userID, time.Now().UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("worker already assigned to task",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", userID.String()))
			return fmt.Errorf("%w: %v", store.ErrWorkerExists, err)
		}
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: task %s or user %s not found",
				store.ErrInvalidEntity, taskID, userID)
		}

		log.Error("failed to add worker to task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("worker added to task",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// RemoveWorker implements store.TaskStore.RemoveWorker
// Removing a user that is not assigned is a no-op.
func (s *PostgresTaskStore) RemoveWorker(ctx context.Context, taskID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM task_workers WHERE task_id = $1 AND user_id = $2`

	if _, err := s.db.ExecContext(ctx, query, taskID, userID); err != nil {
		log.Error("failed to remove worker from task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("worker removed from task",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Worker associations are removed by the ON DELETE CASCADE on task_workers.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete",
			slog.String("task_id", id.String()))
		return err
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()))
	return nil
}

// ListByAuthorEmail implements store.TaskStore.ListByAuthorEmail
func (s *PostgresTaskStore) ListByAuthorEmail(
	ctx context.Context,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	from := `
		FROM tasks t
		JOIN users u ON u.id = t.author_id
	`
	return s.listTasks(ctx, from, email, filter, params)
}

// ListByWorkerEmail implements store.TaskStore.ListByWorkerEmail
func (s *PostgresTaskStore) ListByWorkerEmail(
	ctx context.Context,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	from := `
		FROM tasks t
		JOIN users u ON u.id = t.author_id
		JOIN task_workers tw ON tw.task_id = t.id
		JOIN users w ON w.id = tw.user_id
	`
	return s.listTasks(ctx, from, email, filter, params)
}

// listTasks runs the shared count+page query pair for the list operations.
// The FROM clause must expose the tasks table as t, the author as u and,
// for worker listings, the worker as w. The email predicate binds to w
// when the worker join is present and to u otherwise.
func (s *PostgresTaskStore) listTasks(
	ctx context.Context,
	from string,
	email string,
	filter store.TaskFilter,
	params store.PageParams,
) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	params = params.Normalize()

	emailAlias := "u"
	if strings.Contains(from, "JOIN users w") {
		emailAlias = "w"
	}

	conds := []string{fmt.Sprintf("%s.email = $1", emailAlias)}
	args := []interface{}{email}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conds = append(conds, fmt.Sprintf("t.priority = $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conds, " AND ")

	countQuery := `SELECT count(*) ` + from + where

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()))
		return nil, err
	}

	pageQuery := fmt.Sprintf(
		`SELECT %s %s %s ORDER BY t.created_at DESC, t.id LIMIT $%d OFFSET $%d`,
		taskColumns, from, where, len(args)+1, len(args)+2,
	)
	args = append(args, params.Size, params.Offset())

	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	for _, task := range tasks {
		if err := s.loadWorkers(ctx, task); err != nil {
			return nil, err
		}
	}

	return store.NewTaskPage(tasks, params, total), nil
}

// loadWorkers hydrates the task's worker set, oldest assignment first.
func (s *PostgresTaskStore) loadWorkers(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.id, u.nickname, u.email, u.hashed_password, u.role, u.created_at, u.updated_at
		FROM task_workers tw
		JOIN users u ON u.id = tw.user_id
		WHERE tw.task_id = $1
		ORDER BY tw.created_at, u.id
	`

	rows, err := s.db.QueryContext(ctx, query, task.ID)
	if err != nil {
		log.Error("failed to query task workers",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	workers := []*domain.User{}
	for rows.Next() {
		var worker domain.User
		err := rows.Scan(
			&worker.ID,
			&worker.Nickname,
			&worker.Email,
			&worker.HashedPassword,
			&worker.Role,
			&worker.CreatedAt,
			&worker.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan worker row",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return err
		}
		workers = append(workers, &worker)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning worker rows",
			slog.String("error", err.Error()))
		return err
	}

	task.Workers = workers
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTask reads one task row, including the joined author columns, in
// taskColumns order. Workers are hydrated separately.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var author domain.User
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Comment,
		&status,
		&priority,
		&task.CreatedAt,
		&task.UpdatedAt,
		&author.ID,
		&author.Nickname,
		&author.Email,
		&author.HashedPassword,
		&author.Role,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.Author = &author
	task.Workers = []*domain.User{}
	return &task, nil
}
