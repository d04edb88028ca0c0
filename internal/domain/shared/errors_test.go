package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches on code regardless of message", func(t *testing.T) {
		err := NewNotFoundError("SKU", "sku-123")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrValidation))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("update failed: %w", NewValidationError("name cannot be empty"))
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("does not match foreign errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrNotFound))
	})
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, CodeDuplicateCode, ErrorCode(NewDomainError(CodeDuplicateCode, "taken")))
	assert.Equal(t, CodeNotFound, ErrorCode(fmt.Errorf("wrapped: %w", ErrNotFound)))
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
	assert.Equal(t, "", ErrorCode(nil))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Branch", "branch-1")
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, `Branch "branch-1" not found`, err.Error())
}
