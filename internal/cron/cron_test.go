package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct{ calls int }

func (p *countingPurger) Purge() int {
	p.calls++
	return 3
}

func TestScheduler_RegistersPurge(t *testing.T) {
	p := &countingPurger{}
	s := NewScheduler(p)
	require.NoError(t, s.Start())
	defer s.Stop()

	entries := s.cron.Entries()
	require.Len(t, entries, 1)

	entries[0].Job.Run()
	assert.Equal(t, 1, p.calls)
}

func TestScheduler_NoDrafts(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Empty(t, s.cron.Entries())
}
