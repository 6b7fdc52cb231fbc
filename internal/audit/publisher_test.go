package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "lahu/pkg/domain"
	"lahu/pkg/requestcontext"
)

type failingSink struct{ calls int }

func (f *failingSink) Append(context.Context, Event) error {
	f.calls++
	return errors.New("broker unavailable")
}

func TestPublisher_EnrichesEvents(t *testing.T) {
	store := NewInMemoryStore()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pub := NewPublisher(WithSink(store), WithClock(func() time.Time { return fixed }))

	ctx := requestcontext.WithClientMetadata(context.Background(), "10.0.0.7",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	userID := id.UserID(uuid.New())

	require.NoError(t, pub.Emit(ctx, Event{UserID: userID, Action: string(EventLoginSucceeded)}))

	events, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, fixed, e.Timestamp)
	assert.Equal(t, "10.0.0.7", e.ClientIP)
	assert.Contains(t, e.UserAgent, "Chrome")
	assert.Contains(t, e.UserAgent, "Linux")
}

func TestPublisher_SinkFailureDoesNotStopOtherSinks(t *testing.T) {
	failing := &failingSink{}
	store := NewInMemoryStore()
	pub := NewPublisher(WithSink(failing), WithSink(store))

	err := pub.Emit(context.Background(), Event{Action: string(EventLogout)})
	require.Error(t, err)
	assert.Equal(t, 1, failing.calls)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPublisher_NoSinks(t *testing.T) {
	assert.NoError(t, NewPublisher().Emit(context.Background(), Event{Action: string(EventUserCreated)}))
}

func TestInMemoryStore_ListRecent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	for _, action := range []EventType{EventUserCreated, EventLoginSucceeded, EventLogout} {
		require.NoError(t, store.Append(ctx, Event{Action: string(action)}))
	}

	recent, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, string(EventLoginSucceeded), recent[0].Action)
	assert.Equal(t, string(EventLogout), recent[1].Action)

	all, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	store.Clear()
	all, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDescribeUserAgent(t *testing.T) {
	assert.Equal(t, "", describeUserAgent(""))
	assert.Equal(t, "curl/8.4.0", describeUserAgent("curl/8.4.0"))
	assert.Contains(t, describeUserAgent("Googlebot/2.1 (+http://www.google.com/bot.html)"), "bot")
}
