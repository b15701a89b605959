package drafts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clock.now
	return s, clock
}

func newSession() *Session {
	return NewSession(gigdraft.New(uuid.New()), nil)
}

func TestMemoryStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)
	sess := newSession()
	sess.Draft.Title = "Logo"

	require.NoError(t, s.Create(ctx, sess))
	assert.Error(t, s.Create(ctx, sess), "duplicate id")

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo", got.Draft.Title)
	assert.Equal(t, sess.OwnerID, got.OwnerID)

	got.Draft.Title = "changed"
	again, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo", again.Draft.Title)
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)
	sess := newSession()
	require.NoError(t, s.Create(ctx, sess))

	updated, err := s.Update(ctx, sess.ID, func(cur *Session) error {
		cur.Draft = gigdraft.Reduce(cur.Draft, gigdraft.SetField{Field: gigdraft.FieldTitle, Value: "Logo"})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Revision)
	assert.Equal(t, "Logo", updated.Draft.Title)

	boom := errors.New("boom")
	_, err = s.Update(ctx, sess.ID, func(cur *Session) error {
		cur.Draft.Title = "lost"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo", got.Draft.Title)
	assert.Equal(t, 2, got.Revision)
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Update(ctx, "missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(30 * time.Minute)
	sess := newSession()
	require.NoError(t, s.Create(ctx, sess))

	clock.t = clock.t.Add(20 * time.Minute)
	_, err := s.Update(ctx, sess.ID, func(*Session) error { return nil })
	require.NoError(t, err)

	// the update refreshed the TTL
	clock.t = clock.t.Add(20 * time.Minute)
	_, err = s.Get(ctx, sess.ID)
	require.NoError(t, err)

	clock.t = clock.t.Add(31 * time.Minute)
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Purge(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(time.Minute)
	require.NoError(t, s.Create(ctx, newSession()))
	require.NoError(t, s.Create(ctx, newSession()))

	assert.Equal(t, 0, s.Purge())
	clock.t = clock.t.Add(2 * time.Minute)
	assert.Equal(t, 2, s.Purge())
	assert.Empty(t, s.items)
}
