package foldermanager

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "existing.txt"), []byte("x"), 0o644))

	w, err := NewWatcher(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fired := make(chan struct{}, 1)
	go func() {
		_ = w.Run(ctx, func() error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte("y"), 0o644))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire on change")
	}
}

func TestWatcherTracksNewSubdirectories(t *testing.T) {
	root := t.TempDir()

	w, err := NewWatcher(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fired := make(chan struct{}, 4)
	go func() {
		_ = w.Run(ctx, func() error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.txt"), []byte("z"), 0o644))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not pick up file created in new subdirectory")
	}
}
