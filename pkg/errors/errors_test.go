package errors

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "not found", err: NotFoundError("tag"), check: IsNotFound},
		{name: "already exists", err: AlreadyExistsError("tag"), check: IsAlreadyExists},
		{name: "validation", err: ValidationError("bad"), check: IsInvalidInput},
		{name: "task type", err: InvalidTaskTypeError(3), check: IsInvalidTaskType},
		{name: "days limit", err: InvalidDaysLimitError(0, 1, 30), check: IsInvalidDaysLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(errors.Wrap(tt.err, "wrapped")))
			assert.False(t, tt.check(InternalError("boom", errors.New("db down"))))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "call not found: resource not found", NotFoundError("call").Error())
	assert.Equal(t, "task with id 3 is not a template task", InvalidTaskTypeError(3).Message)
	assert.Equal(t, "days parameter must be between 1 and 30, got 31", InvalidDaysLimitError(31, 1, 30).Message)
}

func TestGetAppError(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := errors.Wrap(InternalError("failed to list calls", cause), "call usecase")

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, 50000, appErr.Code)
	assert.True(t, errors.Is(appErr, cause))

	assert.Nil(t, GetAppError(cause))
}
