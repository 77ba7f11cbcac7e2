package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, event Event) error {
		calls = append(calls, "first:"+event.Username)
		return nil
	})
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, event Event) error {
		calls = append(calls, "second:"+event.Username)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered, Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, []string{"first:alice", "second:alice"}, calls)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(EventPasswordChanged, func(_ context.Context, _ Event) error {
		return errors.New("handler failure")
	})
	dispatcher.Subscribe(EventPasswordChanged, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventPasswordChanged})
	require.NoError(t, err)
	require.True(t, reached)
}

func TestDispatcher_NoSubscribersIsNoop(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	err := dispatcher.Publish(context.Background(), Event{Type: EventEmployeeCreated})
	require.NoError(t, err)
}
