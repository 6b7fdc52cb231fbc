package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatching(t *testing.T) {
	t.Run("matches on code and message", func(t *testing.T) {
		err := New(CodeNotFound, "donor not found")
		require.ErrorIs(t, err, New(CodeNotFound, "donor not found"))
		assert.NotErrorIs(t, err, New(CodeNotFound, "user not found"))
		assert.NotErrorIs(t, err, New(CodeConflict, "donor not found"))
	})

	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "failed to save donor")
		assert.ErrorIs(t, err, cause)
		assert.True(t, HasCode(err, CodeInternal))
		assert.Equal(t, "failed to save donor: connection reset", err.Error())
	})

	t.Run("HasCode sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeValidation, "age must be at least 18"))
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeBadRequest))
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	})
}
