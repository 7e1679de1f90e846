package marker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/state"
)

type memoryRepo struct {
	saved []state.Marker
	err   error
}

func (m *memoryRepo) Load(context.Context) (state.Marker, error) {
	if len(m.saved) == 0 {
		return state.Marker{}, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memoryRepo) Save(_ context.Context, mk state.Marker) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, mk)
	return nil
}

func fixedConfig() Config {
	n := 0
	return Config{
		Clock: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewSession: func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		},
	}
}

func runSession(t *testing.T, c *lifecycle.Coordinator, id string) {
	t.Helper()
	for _, kind := range lifecycle.EventKinds {
		require.NoError(t, c.Handle(kind, id))
	}
}

func TestListener_RecordsEverySession(t *testing.T) {
	repo := &memoryRepo{}
	l := New(repo, fixedConfig())
	c := lifecycle.NewCoordinator()
	require.NoError(t, c.Add(l))

	runSession(t, c, "main")
	require.True(t, c.Registry().Contains(l), "marker listener must survive Finished")
	runSession(t, c, "other")

	require.Len(t, repo.saved, 12)
	first, last := repo.saved[0], repo.saved[5]
	assert.Equal(t, lifecycle.EventCreated, first.Event)
	assert.Equal(t, "session-1", first.Session)
	assert.Equal(t, uint64(1), first.Sequence)
	assert.Equal(t, lifecycle.EventFinished, last.Event)
	assert.Equal(t, "session-1", last.Session)
	assert.Equal(t, uint64(6), last.Sequence)

	again := repo.saved[6]
	assert.Equal(t, "session-2", again.Session)
	assert.Equal(t, "other", again.Context)
	assert.Equal(t, uint64(1), again.Sequence)

	assert.Empty(t, l.Session())
	assert.NoError(t, l.Err())
}

func TestListener_CrashLeavesUncleanMarker(t *testing.T) {
	repo := state.NewFileRepository(t.TempDir())
	c := lifecycle.NewCoordinator()
	require.NoError(t, c.Add(New(repo, Config{})))

	require.NoError(t, c.Created("main"))
	require.NoError(t, c.Started("main"))
	require.NoError(t, c.Resumed("main"))

	m, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.EventResumed, m.Event)
	assert.False(t, m.Clean())
	assert.NotEmpty(t, m.Session)
}

func TestListener_SaveErrorIsKept(t *testing.T) {
	repo := &memoryRepo{err: errors.New("disk full")}
	l := New(repo, fixedConfig())

	l.OnCreated("main")

	assert.EqualError(t, l.Err(), "disk full")
	assert.Equal(t, "session-1", l.Session())
}

func TestNew_Defaults(t *testing.T) {
	l := New(&memoryRepo{}, Config{})
	def := DefaultConfig()

	assert.Equal(t, def.SaveTimeout, l.cfg.SaveTimeout)
	assert.NotNil(t, l.cfg.Clock)
	assert.NotNil(t, l.cfg.NewSession)
	assert.NotNil(t, l.logger)
	assert.True(t, l.Persistent())
}
