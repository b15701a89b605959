package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub()
	go h.Run(ctx)
	return h
}

func receive(t *testing.T, c *Client) GigEvent {
	t.Helper()
	select {
	case msg := <-c.Send:
		var ev GigEvent
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatalf("client %s received nothing", c.ID)
	}
	return GigEvent{}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGigNotifier_Submitted(t *testing.T) {
	h := startHub(t)
	owner := uuid.New()
	ownerClient := NewClient(owner, "freelancer", nil)
	admin := NewClient(uuid.New(), "admin", nil)
	other := NewClient(uuid.New(), "client", nil)
	for _, c := range []*Client{ownerClient, admin, other} {
		h.RegisterClient(c)
	}
	require.Eventually(t, func() bool { return h.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	GigNotifier{Hub: h}.GigSubmitted(GigEvent{GigID: "abc", OwnerID: owner, Status: "review"})

	ev := receive(t, ownerClient)
	assert.Equal(t, EventGigSubmitted, ev.Type)
	assert.Equal(t, "abc", ev.GigID)
	assert.Equal(t, EventGigSubmitted, receive(t, admin).Type)
	assertSilent(t, other)
}

func TestGigNotifier_PublishedIsBroadcast(t *testing.T) {
	h := startHub(t)
	owner := uuid.New()
	ownerClient := NewClient(owner, "freelancer", nil)
	other := NewClient(uuid.New(), "client", nil)
	h.RegisterClient(ownerClient)
	h.RegisterClient(other)
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	GigNotifier{Hub: h}.GigStatusChanged(GigEvent{GigID: "abc", OwnerID: owner, Status: "published"})

	assert.Equal(t, "published", receive(t, ownerClient).Status)
	assert.Equal(t, "published", receive(t, ownerClient).Status)
	assert.Equal(t, EventGigStatusChanged, receive(t, other).Type)
}

func TestHub_Unregister(t *testing.T) {
	h := startHub(t)
	c := NewClient(uuid.New(), "client", nil)
	h.RegisterClient(c)
	h.UnregisterClient(c)

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, h.ClientCount())
}
