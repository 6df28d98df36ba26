package demo

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/najoast/pointdemo/bootstrap"
	"github.com/najoast/pointdemo/config"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReloaderRerunsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	configFile := filepath.Join(t.TempDir(), "pointdemo.yaml")
	if err := os.WriteFile(configFile, []byte("demo:\n  numbers: [1, 2, 3, 4, 5]\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loader := config.NewLoader().SetSearchPaths(nil).SetLookupEnv(func(string) (string, bool) { return "", false })
	watcher, err := config.NewWatcher(configFile, loader, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	watcher.SetDebounce(50 * time.Millisecond)

	var out syncBuffer
	script := NewScript(watcher.GetConfig().Demo, &out, nil)
	reloader := NewReloader(watcher, script, nil)

	app := bootstrap.NewApplication(nil)
	if err := app.Register(script); err != nil {
		t.Fatalf("Register script: %v", err)
	}
	if err := app.Register(reloader, script.Name()); err != nil {
		t.Fatalf("Register reloader: %v", err)
	}

	ctx := context.Background()
	lm := app.LifecycleManager()
	if err := lm.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if health := lm.Health(ctx)["reloader"]; health.State != bootstrap.HealthHealthy {
		t.Errorf("Expected reloader healthy, got %v", health.State)
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(configFile, []byte("demo:\n  numbers: [2]\n"), 0644); err != nil {
		t.Fatalf("Failed to update config: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for script.Last().Total != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("Script was not rerun after config change; output:\n%s", out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}

	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}

	want := "Sum of numbers: 2\nThe sum is small.\n"
	if !strings.HasSuffix(out.String(), want) {
		t.Errorf("Expected rerun output to end with %q, got:\n%s", want, out.String())
	}
	if health := lm.Health(ctx)["reloader"]; health.State != bootstrap.HealthStopped {
		t.Errorf("Expected reloader stopped, got %v", health.State)
	}
}
