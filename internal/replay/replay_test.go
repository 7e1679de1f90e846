package replay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/applifecycle/internal/script"
	"github.com/bft-labs/applifecycle/pkg/lifecycle"
)

func steps(lines ...string) script.Script {
	s := script.Script{Name: "test"}
	for _, line := range lines {
		f := strings.Fields(line)
		st := script.Step{Event: script.Callback(f[0]), Screen: f[1]}
		if len(f) > 2 && f[2] == "finishing" {
			st.Finishing = true
		}
		s.Steps = append(s.Steps, st)
	}
	return s
}

func names(ns []Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return out
}

func TestRun_Handoff(t *testing.T) {
	s := steps(
		"created A", "started A", "resumed A",
		"paused A", "created B", "started B", "resumed B", "stopped A",
		"paused B", "created A", "started A", "resumed A", "stopped B finishing",
		"destroyed B",
		"paused A", "stopped A finishing", "destroyed A",
	)

	res, err := Run(s, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Created(A)", "Started(A)", "Resumed(A)", "Paused(A)",
		"Resumed(B)", "Paused(B)",
		"Resumed(A)", "Paused(A)", "Stopped(A)", "Finished(A)",
	}, names(res.Notifications))
	assert.True(t, res.Final.Idle())
	assert.Equal(t, len(s.Steps), res.Steps)
	assert.Equal(t, 16, res.Notifications[len(res.Notifications)-1].Step)
}

func TestRun_WritesNotifications(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(steps("created main", "started main"), Options{Out: &out})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Created")
	assert.Contains(t, lines[0], "main")
	assert.True(t, strings.HasPrefix(lines[1], "  2"))
}

func TestRun_SharedCoordinator(t *testing.T) {
	c := lifecycle.NewCoordinator()
	keeper := &lifecycle.ListenerFuncs{Keep: true}
	require.NoError(t, c.Add(keeper))

	res, err := Run(steps("created A", "started A", "resumed A"), Options{Coordinator: c})
	require.NoError(t, err)

	assert.Equal(t, lifecycle.EventResumed, res.Final.LastEvent)
	assert.Equal(t, "A", res.Final.Active)
	assert.Equal(t, 1, c.Registry().Len(), "recorder must be removed after the run")
	assert.True(t, c.Registry().Contains(keeper))
}

func TestRun_MultipleSessions(t *testing.T) {
	s := steps(
		"created A", "started A", "resumed A", "paused A", "stopped A finishing",
		"created A", "started A", "resumed A", "paused A", "stopped A finishing",
	)

	res, err := Run(s, Options{})
	require.NoError(t, err)

	assert.Len(t, res.Notifications, 12)
	assert.Equal(t, lifecycle.EventCreated, res.Notifications[6].Event)
}

func TestRun_InvalidScript(t *testing.T) {
	_, err := Run(script.Script{}, Options{})
	assert.ErrorIs(t, err, script.ErrInvalidScript)
}
