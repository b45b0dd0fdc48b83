package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/AbdelazizMoustafa10m/autocore/internal/logging"
)

// ExitError reports that the build tool ran and exited non-zero. Code is the
// tool's exit status and becomes the process exit status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build tool exited with status %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("build tool exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExecMiddleware wraps the interpreter's handler for external commands.
type ExecMiddleware = func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc

// Driver prints and runs invocations.
type Driver struct {
	stdout      io.Writer
	stderr      io.Writer
	dir         string
	env         []string
	middlewares []ExecMiddleware
	logger      *log.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithStdout sets where the printed command line and the tool's standard
// output go. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(d *Driver) { d.stdout = w }
}

// WithStderr sets the tool's standard error. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(d *Driver) { d.stderr = w }
}

// WithDir sets the directory the tool runs in. Defaults to the current
// directory.
func WithDir(dir string) Option {
	return func(d *Driver) { d.dir = dir }
}

// WithEnv replaces the environment passed to the tool. Defaults to
// os.Environ().
func WithEnv(env []string) Option {
	return func(d *Driver) { d.env = env }
}

// WithExecMiddleware intercepts external command execution. Tests use it to
// observe the argument vector without running a real build.
func WithExecMiddleware(mw ...ExecMiddleware) Option {
	return func(d *Driver) { d.middlewares = append(d.middlewares, mw...) }
}

// WithLogger replaces the driver's logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// NewDriver returns a Driver with the given options applied.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.env == nil {
		d.env = os.Environ()
	}
	if d.logger == nil {
		d.logger = logging.New("invoke")
	}
	return d
}

// Run prints the invocation on its own line, then executes it and waits.
// A non-zero exit status is returned as *ExitError; the build is never
// retried.
func (d *Driver) Run(ctx context.Context, inv Invocation) error {
	if inv.Tool == "" {
		return errors.New("invoke: build tool is empty")
	}

	line, err := inv.Shell()
	if err != nil {
		return fmt.Errorf("invoke: %w", err)
	}
	if _, err := fmt.Fprintln(d.stdout, line); err != nil {
		return fmt.Errorf("invoke: printing command: %w", err)
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "invocation")
	if err != nil {
		return fmt.Errorf("invoke: parsing command: %w", err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(d.env...)),
		interp.StdIO(nil, d.stdout, d.stderr),
	}
	if d.dir != "" {
		opts = append(opts, interp.Dir(d.dir))
	}
	if len(d.middlewares) > 0 {
		opts = append(opts, interp.ExecHandlers(d.middlewares...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("invoke: creating interpreter: %w", err)
	}

	d.logger.Debug("running build tool", "tool", inv.Tool, "instance", inv.Instance, "args", len(inv.Args()))
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			d.logger.Debug("build tool failed", "status", int(status))
			return &ExitError{Code: int(status)}
		}
		return fmt.Errorf("invoke: running %s: %w", inv.Tool, err)
	}
	return nil
}
