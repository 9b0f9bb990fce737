package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherTriggersOnTemplateChange(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "prompt.epl")
	if err := os.WriteFile(template, []byte("v1"), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	w, err := New(&Config{Path: dir, DebounceInterval: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	var changes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() error {
			changes.Add(1)
			return nil
		})
	}()

	// Give the watch loop time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(template, []byte("v2"), 0o644); err != nil {
		t.Fatalf("failed to modify template: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for changes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher never fired for a template change")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("watch returned error: %v", err)
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	w, err := New(DefaultConfig(dir))
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	var changes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() error {
			changes.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if changes.Load() != 0 {
		t.Errorf("non-template file triggered %d change(s)", changes.Load())
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	<-done
}

func TestDebouncerFoldsBursts(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)
	defer d.stop()

	var fired atomic.Int32
	for i := 0; i < 10; i++ {
		d.trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected 1 debounced callback, got %d", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var fired atomic.Int32
	d.trigger(func() { fired.Add(1) })
	d.stop()

	time.Sleep(150 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("stopped debouncer must not fire pending callbacks")
	}
}
