package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to every subscriber of the type", func(t *testing.T) {
		dispatcher := NewInMemoryDispatcher()
		received := []string{}
		dispatcher.Subscribe(EventRequestCreated, func(_ context.Context, e Event) error {
			received = append(received, "first:"+e.ID)
			return nil
		})
		dispatcher.Subscribe(EventRequestCreated, func(_ context.Context, e Event) error {
			received = append(received, "second:"+e.ID)
			return nil
		})
		dispatcher.Subscribe(EventRequestClaimed, func(context.Context, Event) error {
			received = append(received, "wrong-type")
			return nil
		})

		err := dispatcher.Publish(ctx, Event{ID: "e1", Type: EventRequestCreated})
		require.NoError(t, err)
		assert.Equal(t, []string{"first:e1", "second:e1"}, received)
	})

	t.Run("a failing handler does not stop the rest", func(t *testing.T) {
		dispatcher := NewInMemoryDispatcher()
		delivered := false
		dispatcher.Subscribe(EventRequestCompleted, func(context.Context, Event) error {
			return errors.New("handler failure")
		})
		dispatcher.Subscribe(EventRequestCompleted, func(context.Context, Event) error {
			delivered = true
			return nil
		})

		err := dispatcher.Publish(ctx, Event{Type: EventRequestCompleted})
		require.NoError(t, err)
		assert.True(t, delivered)
	})

	t.Run("publishing without subscribers is a no-op", func(t *testing.T) {
		dispatcher := NewInMemoryDispatcher()
		assert.NoError(t, dispatcher.Publish(ctx, Event{Type: EventUserRoleChanged}))
	})
}
