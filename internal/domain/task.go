package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates the lifecycle states of a task.
//
// There is deliberately no transition graph: the author may set any status
// directly, matching the flat overwrite semantics of ChangeStatus.
type TaskStatus string

const (
	TaskStatusReceived   TaskStatus = "Received"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

// ParseTaskStatus converts a string into a TaskStatus.
// Returns ErrInvalidStatus for unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusReceived, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return TaskStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsValid reports whether the status is a known value.
func (s TaskStatus) IsValid() bool {
	_, err := ParseTaskStatus(string(s))
	return err == nil
}

// TaskPriority enumerates task priorities, lowest first.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// ParseTaskPriority converts a string into a TaskPriority.
// Returns ErrInvalidPriority for unknown values.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return TaskPriority(s), nil
	default:
		return "", ErrInvalidPriority
	}
}

// IsValid reports whether the priority is a known value.
func (p TaskPriority) IsValid() bool {
	_, err := ParseTaskPriority(string(p))
	return err == nil
}

// Task-specific validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrNilAuthor      = errors.New("task author cannot be nil")
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrTitleTooLong   = errors.New("title must be at most 255 characters long")
	ErrCommentTooLong = errors.New("comment must be at most 1000 characters long")
)

// Task represents a unit of work created by an author and optionally
// assigned to a set of workers. The author is fixed at creation and is the
// only identity permitted to mutate or delete the task.
type Task struct {
	ID        uuid.UUID    `json:"id"`
	Author    *User        `json:"author"`
	Workers   []*User      `json:"workers"`
	Title     string       `json:"title"`
	Comment   string       `json:"comment"`
	Status    TaskStatus   `json:"status"`
	Priority  TaskPriority `json:"priority"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewTask creates a task for the given author with status Received and an
// empty worker set. An empty priority defaults to Low.
func NewTask(author *User, title, comment string, priority TaskPriority) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityLow
	}

	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		Author:    author,
		Workers:   []*User{},
		Title:     title,
		Comment:   comment,
		Status:    TaskStatusReceived,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Author == nil {
		return ErrNilAuthor
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 255 {
		return ErrTitleTooLong
	}
	if len(t.Comment) > 1000 {
		return ErrCommentTooLong
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// HasWorker reports whether a user with the given email is already in the
// worker set. Matching is by email, the identity used throughout the API.
func (t *Task) HasWorker(email string) bool {
	for _, w := range t.Workers {
		if w.Email == email {
			return true
		}
	}
	return false
}

// AddWorker appends a worker to the task. The caller is responsible for
// checking HasWorker first; duplicates are also rejected by the store.
func (t *Task) AddWorker(worker *User) {
	t.Workers = append(t.Workers, worker)
}

// RemoveWorker removes the worker with the given ID from the task.
// Removing a worker that is not present is a no-op.
func (t *Task) RemoveWorker(workerID uuid.UUID) {
	kept := t.Workers[:0]
	for _, w := range t.Workers {
		if w.ID != workerID {
			kept = append(kept, w)
		}
	}
	t.Workers = kept
}
