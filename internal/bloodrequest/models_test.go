package bloodrequest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

var testNow = time.Date(2026, 4, 10, 8, 30, 0, 0, time.UTC)

func newPending(t *testing.T) *Request {
	t.Helper()
	r, err := NewRequest(id.BloodRequestID(uuid.New()), "Patient", bloodtype.BPositive, 3,
		"Mulago", "0700", UrgencyHigh, "Kampala", "", testNow)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	r := newPending(t)
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.Equal(t, testNow, r.UpdatedAt)

	for _, units := range []int{0, 51, -1} {
		_, err := NewRequest(id.BloodRequestID(uuid.New()), "P", bloodtype.BPositive, units,
			"H", "C", UrgencyLow, "", "", testNow)
		require.Error(t, err, "units %d", units)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	}

	_, err := NewRequest(id.BloodRequestID(uuid.New()), "P", bloodtype.BPositive, 1,
		"H", "C", Urgency("whenever"), "", "", testNow)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestParseUrgencyAndStatus(t *testing.T) {
	u, err := ParseUrgency(" CRITICAL ")
	require.NoError(t, err)
	assert.Equal(t, UrgencyCritical, u)
	_, err = ParseUrgency("soon")
	assert.Error(t, err)

	st, err := ParseStatus("Fulfilled")
	require.NoError(t, err)
	assert.Equal(t, StatusFulfilled, st)
	_, err = ParseStatus("open")
	assert.Error(t, err)
}

func TestTransitionTo(t *testing.T) {
	later := testNow.Add(time.Hour)

	t.Run("pending to fulfilled", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.TransitionTo(StatusFulfilled, later))
		assert.Equal(t, StatusFulfilled, r.Status)
		assert.Equal(t, later, r.UpdatedAt)
	})

	t.Run("pending to cancelled", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.TransitionTo(StatusCancelled, later))
	})

	t.Run("pending to pending is rejected", func(t *testing.T) {
		r := newPending(t)
		err := r.TransitionTo(StatusPending, later)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("terminal states do not move", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.TransitionTo(StatusCancelled, later))
		for _, next := range []Status{StatusPending, StatusFulfilled, StatusCancelled} {
			err := r.TransitionTo(next, later)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation), "cancelled -> %s", next)
		}
		assert.Equal(t, StatusCancelled, r.Status)
	})
}
