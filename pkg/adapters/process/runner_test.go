package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/slidedeck/pkg/activation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
}

func TestRunner_Run(t *testing.T) {
	skipOnWindows(t)

	runner := NewRunner()
	runner.Register("echo_env", "sh", "-c", "echo $SLIDEDECK_HOOK:$SLIDEDECK_SLIDE_INDEX")

	t.Run("Passes Slide Index via Env Vars", func(t *testing.T) {
		ctx := activation.WithIndex(context.Background(), 4)
		out, err := runner.Run(ctx, "echo_env")
		require.NoError(t, err)
		assert.Equal(t, "echo_env:4", out)
	})

	t.Run("Fails For Unregistered Command", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "hacker_script")
		assert.ErrorContains(t, err, "not registered")
	})

	t.Run("Reports Exit Failures", func(t *testing.T) {
		runner.Register("fail", "sh", "-c", "echo oops >&2; exit 3")
		_, err := runner.Run(context.Background(), "fail")
		assert.ErrorContains(t, err, "oops")
	})
}

func TestRunner_AsyncHook(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	runner := NewRunner(WithAsync(true), WithRegistry(map[string]HookConfig{
		"chart": {
			Command:     "sh",
			Args:        []string{"-c", "echo $SLIDEDECK_SLIDE_INDEX-$CHART > " + out},
			Environment: map[string]string{"CHART": "bars"},
		},
	}))

	named := activation.NewNamedRegistry()
	runner.Bind(named)

	hook, ok := named.Lookup("chart")
	require.True(t, ok)
	require.NoError(t, hook(activation.WithIndex(context.Background(), 1)))

	runner.Wait()
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "1-bars\n", string(data))
}

func TestRunner_CloseKillsAsyncHooks(t *testing.T) {
	skipOnWindows(t)

	runner := NewRunner(WithAsync(true), WithRegistry(map[string]HookConfig{
		"slow": {Command: "sleep", Args: []string{"30"}},
	}))
	named := activation.NewNamedRegistry()
	runner.Bind(named)
	require.NoError(t, named.Execute(activation.WithIndex(context.Background(), 0), "slow"))

	closed := make(chan struct{})
	go func() {
		runner.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("Close did not stop the running hook process")
	}

	err := named.Execute(context.Background(), "slow")
	assert.ErrorContains(t, err, "runner closed")
}

func TestRunner_Timeout(t *testing.T) {
	skipOnWindows(t)

	t.Run("Runner Timeout", func(t *testing.T) {
		runner := NewRunner(WithTimeout(100 * time.Millisecond))
		runner.Register("slow", "sh", "-c", "sleep 30")

		began := time.Now()
		_, err := runner.Run(context.Background(), "slow")
		assert.Error(t, err)
		assert.Less(t, time.Since(began), 3*time.Second)
	})

	t.Run("Hook Timeout Overrides Runner", func(t *testing.T) {
		runner := NewRunner(WithAsync(true), WithTimeout(time.Hour), WithRegistry(map[string]HookConfig{
			"slow": {Command: "sleep", Args: []string{"30"}, Timeout: 100 * time.Millisecond},
		}))
		require.NoError(t, runner.Hook("slow")(context.Background()))

		waited := make(chan struct{})
		go func() {
			runner.Wait()
			close(waited)
		}()
		select {
		case <-waited:
		case <-time.After(3 * time.Second):
			t.Fatal("hook process outlived its timeout")
		}
	})
}

func TestRunner_BindKeepsExistingNames(t *testing.T) {
	runner := NewRunner(WithRegistry(map[string]HookConfig{
		"chart": {Command: "false"},
		"table": {Command: "true"},
	}))

	named := activation.NewNamedRegistry()
	called := false
	named.Register("chart", func(context.Context) error {
		called = true
		return nil
	})
	runner.Bind(named)

	require.NoError(t, named.Execute(context.Background(), "chart"))
	assert.True(t, called)
	assert.Equal(t, []string{"chart", "table"}, named.Names())
}

func TestLoadHooks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hooks:
  - name: slide-2
    command: ./render-chart.sh
    args: ["--type", "pie"]
    env:
      THEME: dark
    timeout: 5s
  - command: ignored-without-name
`), 0644))

	hooks, err := LoadHooks(path)
	require.NoError(t, err)
	require.Len(t, hooks, 1)
	assert.Equal(t, "./render-chart.sh", hooks["slide-2"].Command)
	assert.Equal(t, []string{"--type", "pie"}, hooks["slide-2"].Args)
	assert.Equal(t, "dark", hooks["slide-2"].Environment["THEME"])
	assert.Equal(t, 5*time.Second, hooks["slide-2"].Timeout)

	missing, err := LoadHooks(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}
