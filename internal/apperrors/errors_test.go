package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NewNotFoundError("bill not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 404, err.Code)

	wrapped := fmt.Errorf("loading bill: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "bill not found", appErr.Message)
}

func TestUnbalancedEntryError(t *testing.T) {
	err := NewUnbalancedEntryError("100.00", "99.00")
	assert.True(t, errors.Is(err, ErrUnbalancedEntry))
	assert.Contains(t, err.Error(), "debits 100.00 do not equal credits 99.00")
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := NewAppError(500, "boom", nil)
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
