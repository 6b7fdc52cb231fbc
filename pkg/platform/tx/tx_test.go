package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTxNilLeavesContextUntouched(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithTx(ctx, nil))
	_, ok := From(ctx)
	assert.False(t, ok)
}

func TestWithTxRoundTrip(t *testing.T) {
	sqlTx := &sql.Tx{}
	got, ok := From(WithTx(context.Background(), sqlTx))
	require.True(t, ok)
	assert.Same(t, sqlTx, got)
}

func TestExecFallsBackToDB(t *testing.T) {
	db := &sql.DB{}
	assert.Same(t, db, Exec(context.Background(), db))

	sqlTx := &sql.Tx{}
	assert.Same(t, sqlTx, Exec(WithTx(context.Background(), sqlTx), db))
}

func TestNoopRunner(t *testing.T) {
	boom := errors.New("boom")
	var called bool
	err := NoopRunner{}.RunInTx(context.Background(), func(context.Context) error {
		called = true
		return boom
	})
	assert.True(t, called)
	assert.ErrorIs(t, err, boom)
}

func TestPostgresRunnerRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPostgresRunner(nil).RunInTx(ctx, func(context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostgresRunnerJoinsExistingTransaction(t *testing.T) {
	outer := WithTx(context.Background(), &sql.Tx{})
	var inner context.Context
	err := NewPostgresRunner(nil).RunInTx(outer, func(ctx context.Context) error {
		inner = ctx
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, outer, inner)
}
