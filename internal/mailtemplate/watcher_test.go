package mailtemplate

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatch_ReloadsAndResets(t *testing.T) {
	dir := t.TempDir()
	set, err := New(dir, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = set.Watch(ctx, func(kind, name string) {
			mu.Lock()
			events = append(events, kind+":"+name)
			mu.Unlock()
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, OwnerNotification+".html")
	if err := os.WriteFile(path, []byte("---\nsubject: Hot {{.Name}}\n---\n<p>hot</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		out, err := set.Render(OwnerNotification, sampleData())
		return err == nil && out.Subject == "Hot Alice"
	}, "override was not picked up")

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		out, err := set.Render(OwnerNotification, sampleData())
		return err == nil && out.Subject == "New message from Alice"
	}, "default was not restored after removal")

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(events) == 0 {
		t.Error("expected reload callbacks")
	}
}

func TestWatch_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	set, err := New(dir, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	calls := 0
	go func() {
		_ = set.Watch(ctx, func(string, string) {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("callbacks = %d, want 0", calls)
	}
}

func TestWatch_NoDirReturnsImmediately(t *testing.T) {
	set, err := New("", quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := set.Watch(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
