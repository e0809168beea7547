package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthor(t *testing.T) *User {
	t.Helper()

	author, err := NewUser("author", "author@example.com", "secret123")
	require.NoError(t, err)
	return author
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"Received", "InProgress", "Done", "Cancelled"} {
		status, err := ParseTaskStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, TaskStatus(valid), status)
		assert.True(t, status.IsValid())
	}

	for _, invalid := range []string{"", "received", "Paused", "DONE"} {
		_, err := ParseTaskStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", invalid)
	}
}

func TestParseTaskPriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"Low", "Medium", "High"} {
		priority, err := ParseTaskPriority(valid)
		assert.NoError(t, err)
		assert.Equal(t, TaskPriority(valid), priority)
		assert.True(t, priority.IsValid())
	}

	for _, invalid := range []string{"", "low", "Urgent"} {
		_, err := ParseTaskPriority(invalid)
		assert.ErrorIs(t, err, ErrInvalidPriority, "input %q", invalid)
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	author := testAuthor(t)

	t.Run("applies creation defaults", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(author, "Write report", "quarterly numbers", "")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Same(t, author, task.Author)
		assert.Equal(t, TaskStatusReceived, task.Status)
		assert.Equal(t, TaskPriorityLow, task.Priority)
		assert.NotNil(t, task.Workers)
		assert.Empty(t, task.Workers)
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("keeps an explicit priority", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(author, "Write report", "", TaskPriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, TaskPriorityHigh, task.Priority)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name     string
			author   *User
			title    string
			comment  string
			priority TaskPriority
			wantErr  error
		}{
			{"nil author", nil, "Write report", "", "", ErrNilAuthor},
			{"empty title", author, "", "", "", ErrEmptyTitle},
			{"title too long", author, strings.Repeat("x", 256), "", "", ErrTitleTooLong},
			{"comment too long", author, "Write report", strings.Repeat("x", 1001), "", ErrCommentTooLong},
			{"unknown priority", author, "Write report", "", "Urgent", ErrInvalidPriority},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				task, err := NewTask(tc.author, tc.title, tc.comment, tc.priority)
				assert.Nil(t, task)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("boundary lengths are accepted", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(author, strings.Repeat("x", 255), strings.Repeat("y", 1000), "")
		require.NoError(t, err)
		assert.NoError(t, task.Validate())
	})
}

func TestTaskWorkers(t *testing.T) {
	t.Parallel()

	newWorker := func(t *testing.T, email string) *User {
		t.Helper()
		worker, err := NewUser("worker", email, "secret123")
		require.NoError(t, err)
		return worker
	}

	t.Run("add and lookup by email", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(testAuthor(t), "Write report", "", "")
		require.NoError(t, err)

		worker := newWorker(t, "worker@example.com")
		assert.False(t, task.HasWorker(worker.Email))

		task.AddWorker(worker)
		assert.True(t, task.HasWorker(worker.Email))
		assert.False(t, task.HasWorker("other@example.com"))
	})

	t.Run("remove keeps the rest", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(testAuthor(t), "Write report", "", "")
		require.NoError(t, err)

		first := newWorker(t, "first@example.com")
		second := newWorker(t, "second@example.com")
		task.AddWorker(first)
		task.AddWorker(second)

		task.RemoveWorker(first.ID)
		assert.False(t, task.HasWorker(first.Email))
		assert.True(t, task.HasWorker(second.Email))
	})

	t.Run("removing an absent worker is a no-op", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(testAuthor(t), "Write report", "", "")
		require.NoError(t, err)

		task.AddWorker(newWorker(t, "worker@example.com"))
		task.RemoveWorker(uuid.New())
		assert.Len(t, task.Workers, 1)
	})
}
