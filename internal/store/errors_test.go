package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrTaskNotFound, ErrNotFound)

	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("fetching task: %w", ErrTaskNotFound)))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(nil))
}

func TestDuplicateErrors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)
	assert.ErrorIs(t, ErrTitleExists, ErrDuplicate)
	assert.ErrorIs(t, ErrWorkerExists, ErrDuplicate)

	assert.True(t, IsDuplicateError(fmt.Errorf("saving task: %w", ErrTitleExists)))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(errors.New("connection refused")))
}

func TestEntitySpecificErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	// Handlers map these to different user-facing messages, so one must
	// never match another.
	assert.NotErrorIs(t, ErrTitleExists, ErrEmailExists)
	assert.NotErrorIs(t, ErrWorkerExists, ErrTitleExists)
	assert.NotErrorIs(t, ErrUserNotFound, ErrTaskNotFound)
}
