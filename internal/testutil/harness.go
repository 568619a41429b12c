package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/orfile/internal/app"
	"github.com/specialistvlad/orfile/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an app run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunApp builds an app with debug logging and runs it with a background
// context. A panic during construction is returned as Err. With no modules
// the app's core modules are used.
func RunApp(t *testing.T, cfg *app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, cfg, modules...)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, cfg *app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	out := &SafeBuffer{}
	logs := &SafeBuffer{}

	t.Cleanup(func() {
		if os.Getenv("ORFILE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	res := &HarnessResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("app construction panicked: %v", r)
			}
		}()
		res.App = app.NewApp(out, logs, cfg, modules...)
	}()
	if res.Err == nil {
		res.Err = res.App.Run(ctx)
	}

	res.Output = out.String()
	res.LogOutput = logs.String()
	return res
}
