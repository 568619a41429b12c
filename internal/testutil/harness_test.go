package testutil

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/specialistvlad/orfile/internal/app"
	"github.com/specialistvlad/orfile/internal/registry"
	"github.com/stretchr/testify/require"
)

type brokenModule struct{}

func (brokenModule) Register(r *registry.Registry) {
	r.RegisterCommand("broken", &registry.RegisteredCommand{})
}

type echoModule struct{}

func (echoModule) Register(r *registry.Registry) {
	r.RegisterCommand("echo", &registry.RegisteredCommand{
		Run: func(ctx context.Context, args []string, out io.Writer) error {
			_, err := io.WriteString(out, args[0])
			return err
		},
	})
}

func TestSafeBuffer_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	buf := &SafeBuffer{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = buf.Write([]byte("x"))
		}()
	}
	wg.Wait()

	require.Len(t, buf.String(), 50)
}

func TestRunApp_CapturesOutput(t *testing.T) {
	t.Parallel()

	res := RunApp(t, &app.Config{Command: "echo", Args: []string{"hello"}}, echoModule{})

	require.NoError(t, res.Err)
	require.Equal(t, "hello", res.Output)
	require.Contains(t, res.LogOutput, "Registry validation passed.")
}

func TestRunApp_RecoversConstructionPanic(t *testing.T) {
	t.Parallel()

	res := RunApp(t, &app.Config{Command: "broken"}, brokenModule{})

	require.ErrorContains(t, res.Err, "app construction panicked")
	require.ErrorContains(t, res.Err, "command 'broken': no Run function")
	require.Nil(t, res.App)
}
