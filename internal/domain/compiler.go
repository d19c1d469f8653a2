package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"liu.dev/pkg/liu/internal/adapter"
	m "liu.dev/pkg/liu/internal/model"
)

var (
	// ErrCompileFailed marks a compile command that did not succeed.
	ErrCompileFailed = errors.New("compile failed")
	// ErrLinkFailed marks a link command that did not succeed.
	ErrLinkFailed = errors.New("link failed")
)

// tempPrefix names the binary linked in replace mode before it is swapped in.
const tempPrefix = "~"

// CommandError reports an external command that failed to start or exited
// with a non-zero status. It matches ErrCompileFailed or ErrLinkFailed with
// errors.Is, and the underlying *exec.ExitError with errors.As.
type CommandError struct {
	Command m.Command
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed: %s: %v", e.Command.Kind, e.Command.Line(), e.Err)
}

// Unwrap exposes both the step sentinel and the cause.
func (e *CommandError) Unwrap() []error {
	sentinel := ErrCompileFailed
	if e.Command.Kind == m.CommandLink {
		sentinel = ErrLinkFailed
	}

	return []error{sentinel, e.Err}
}

// Invocation describes one finished external command.
type Invocation struct {
	Command  m.Command
	Output   string
	Duration time.Duration
}

// CompilerConfig holds the settings command lines are built from.
type CompilerConfig struct {
	CC    string
	Flags string
	Trace bool
}

// Compiler builds and executes compile and link command lines.
type Compiler interface {
	// Compile runs `<CC> -o <object> -c <flags> <source>`.
	Compile(ctx context.Context, source, object m.Path) (Invocation, error)
	// Link runs `<CC> -o [~]<binary> <objects>`; the "~" prefix is used in replace mode.
	Link(ctx context.Context, objects string, binary string, replace bool) (Invocation, error)
}

type compiler struct {
	cfg    CompilerConfig
	runner adapter.CommandRunner
	tracer Tracer
}

// NewCompiler creates a Compiler that executes commands through runner.
func NewCompiler(cfg CompilerConfig, runner adapter.CommandRunner, tracer Tracer) Compiler {
	if tracer == nil {
		tracer = NopTracer
	}

	return &compiler{
		cfg:    cfg,
		runner: runner,
		tracer: tracer,
	}
}

// CompileCommand builds the command line that compiles source into object.
func CompileCommand(cfg CompilerConfig, source, object m.Path) m.Command {
	return m.NewCommand(m.CommandCompile, cfg.CC, "-o", string(object), "-c", cfg.Flags, string(source))
}

// LinkCommand builds the command line that links objects into binary.
func LinkCommand(cfg CompilerConfig, objects, binary string, replace bool) m.Command {
	if replace {
		// Quoted so the shell does not expand "~" as a home directory.
		binary = `"` + tempPrefix + binary + `"`
	}

	return m.NewCommand(m.CommandLink, cfg.CC, "-o", binary, objects)
}

func (c *compiler) Compile(ctx context.Context, source, object m.Path) (Invocation, error) {
	return c.execute(ctx, CompileCommand(c.cfg, source, object))
}

func (c *compiler) Link(ctx context.Context, objects string, binary string, replace bool) (Invocation, error) {
	return c.execute(ctx, LinkCommand(c.cfg, objects, binary, replace))
}

func (c *compiler) execute(ctx context.Context, command m.Command) (Invocation, error) {
	if c.cfg.Trace {
		c.tracer.Trace(command.Line())
	}

	started := time.Now()
	output, err := c.runner.Run(ctx, command)
	invocation := Invocation{
		Command:  command,
		Output:   output,
		Duration: time.Since(started),
	}

	if err != nil && ctx.Err() != nil {
		slog.Debug("Command interrupted", "kind", command.Kind, "command", command.Line(), "error", err)
		return invocation, &CommandError{Command: command, Output: output, Err: err}
	}

	if err != nil {
		slog.Error("Command failed", "kind", command.Kind, "command", command.Line(), "error", err)
		return invocation, &CommandError{Command: command, Output: output, Err: err}
	}

	slog.Debug("Command finished", "kind", command.Kind, "command", command.Line(), "duration", invocation.Duration)

	return invocation, nil
}
