package process

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/activation"
)

// Environment variables passed to every hook process.
const (
	EnvHook       = "SLIDEDECK_HOOK"
	EnvSlideIndex = "SLIDEDECK_SLIDE_INDEX"
)

// DefaultTimeout bounds a hook process when neither the runner nor the hook sets one.
const DefaultTimeout = 30 * time.Second

// killGrace is how long Wait waits for output pipes after the process was killed.
const killGrace = time.Second

// Runner executes activation hooks as local processes.
// Only registered commands can run (allow-list).
type Runner struct {
	mu       sync.RWMutex
	registry map[string]HookConfig
	baseDir  string
	async    bool
	timeout  time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup

	// ctx bounds every process started by the runner; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(hooks map[string]HookConfig) RunnerOption {
	return func(r *Runner) {
		for name, h := range hooks {
			h.Name = name
			r.registry[name] = h
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithAsync makes hooks return once the process started instead of when it exits.
// The exit status is logged.
func WithAsync(async bool) RunnerOption {
	return func(r *Runner) {
		r.async = async
	}
}

// WithTimeout bounds each hook process. d <= 0 keeps DefaultTimeout.
// A hook's own Timeout takes precedence.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for asynchronous results.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]HookConfig),
		timeout:  DefaultTimeout,
		logger:   logging.NewNop(),
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registry[name] = HookConfig{Name: name, Command: command, Args: args}
}

// Names returns the registered hook names, sorted.
func (r *Runner) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Runner) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.registry[name]
	return ok
}

// Hook returns an activation hook running the named command.
// The slide index is taken from the hook context (activation.IndexFrom).
func (r *Runner) Hook(name string) activation.Hook {
	return func(ctx context.Context) error {
		if r.async {
			return r.start(ctx, name)
		}
		_, err := r.Run(ctx, name)
		return err
	}
}

// Bind registers every hook of the runner in named, under its own name.
// Names already present in named are left alone, so hooks registered in code
// win over configured commands.
func (r *Runner) Bind(named *activation.NamedRegistry) {
	for _, name := range r.Names() {
		if _, taken := named.Lookup(name); taken {
			continue
		}
		named.Register(name, r.Hook(name))
	}
}

// Run executes the named command and waits for it. It returns the trimmed stdout.
// The process is killed when ctx is done, the hook times out or the runner closes.
func (r *Runner) Run(ctx context.Context, name string) (string, error) {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	defer context.AfterFunc(r.ctx, stop)()

	cmd, stdout, stderr, cancel, err := r.command(ctx, name)
	if err != nil {
		return "", err
	}
	defer cancel()

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("hook %s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Wait blocks until every asynchronous hook process exited. Processes are
// bounded by their timeout, so Wait returns at the latest once the longest
// timeout elapsed.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close kills every running hook process and waits for them to exit.
// Hooks called after Close fail.
func (r *Runner) Close() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) start(ctx context.Context, name string) error {
	// The process outlives the activation call but not the runner.
	procCtx := r.ctx
	if index, ok := activation.IndexFrom(ctx); ok {
		procCtx = activation.WithIndex(procCtx, index)
	}
	cmd, _, stderr, cancel, err := r.command(procCtx, name)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("hook %s failed to start: %w", name, err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		if err := cmd.Wait(); err != nil {
			r.logger.Warn("hook process failed", "hook", name, "err", err, "stderr", strings.TrimSpace(stderr.String()))
			return
		}
		r.logger.Debug("hook process finished", "hook", name)
	}()
	return nil
}

func (r *Runner) command(ctx context.Context, name string) (*exec.Cmd, *bytes.Buffer, *bytes.Buffer, context.CancelFunc, error) {
	r.mu.RLock()
	h, ok := r.registry[name]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("process hook not registered: %s", name)
	}
	if err := r.ctx.Err(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("hook %s: runner closed: %w", name, err)
	}

	timeout := r.timeout
	if h.Timeout > 0 {
		timeout = h.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	cmd := exec.CommandContext(ctx, h.Command, h.Args...)
	cmd.Dir = r.baseDir
	// Children that inherited stdout must not keep Wait blocked after the kill.
	cmd.WaitDelay = killGrace

	// Arguments travel as environment variables, never as flags.
	env := []string{EnvHook + "=" + name}
	if index, ok := activation.IndexFrom(ctx); ok {
		env = append(env, EnvSlideIndex+"="+strconv.Itoa(index))
	}
	for k, v := range h.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	return cmd, &stdout, &stderr, cancel, nil
}
