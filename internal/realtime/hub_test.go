package realtime_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"public-vision-be/internal/realtime"
)

func TestHubPushDelivers(t *testing.T) {
	hub := realtime.NewHub()
	userID := uuid.New()

	ch := hub.Register(userID)
	delivered := hub.Push(userID, realtime.Event{Event: realtime.EventNotification, Data: "hello"})

	assert.True(t, delivered)
	event := <-ch
	assert.Equal(t, realtime.EventNotification, event.Event)
	assert.Equal(t, "hello", event.Data)
}

func TestHubPushToDisconnectedUser(t *testing.T) {
	hub := realtime.NewHub()

	delivered := hub.Push(uuid.New(), realtime.Event{Event: realtime.EventNotification})
	assert.False(t, delivered)
}

func TestHubRegisterReplacesOldConnection(t *testing.T) {
	hub := realtime.NewHub()
	userID := uuid.New()

	old := hub.Register(userID)
	fresh := hub.Register(userID)

	_, open := <-old
	assert.False(t, open, "old channel should be closed")

	assert.True(t, hub.Push(userID, realtime.Event{Event: realtime.EventNotification}))
	assert.Len(t, fresh, 1)
}

func TestHubPushDropsOnFullBuffer(t *testing.T) {
	hub := realtime.NewHub()
	userID := uuid.New()
	hub.Register(userID)

	for i := 0; i < 16; i++ {
		assert.True(t, hub.Push(userID, realtime.Event{Event: realtime.EventNotification}))
	}

	// Buffer is full now: the push fails and the client is dropped.
	assert.False(t, hub.Push(userID, realtime.Event{Event: realtime.EventNotification}))
	assert.False(t, hub.Connected(userID))
}

func TestHubUnregisterIgnoresStaleChannel(t *testing.T) {
	hub := realtime.NewHub()
	userID := uuid.New()

	stale := hub.Register(userID)
	hub.Register(userID)

	hub.Unregister(userID, stale)
	assert.True(t, hub.Connected(userID), "newer connection must survive a stale unregister")
}
