package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, path, Config{Debounce: 20 * time.Millisecond}, func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	// Unrelated files in the directory are ignored.
	before := runs.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, before, runs.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ErrorsDoNotStopWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	go func() {
		_ = Run(ctx, path, Config{Debounce: 10 * time.Millisecond}, func(context.Context) error {
			runs.Add(1)
			return errors.New("bad script")
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestRun_MissingDirectory(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "nope", "script.toml"), Config{}, func(context.Context) error {
		t.Error("fn called for unwatchable path")
		return nil
	})
	require.Error(t, err)
}
