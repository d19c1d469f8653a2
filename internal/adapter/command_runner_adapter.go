package adapter

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"runtime"
	"sync"

	m "liu.dev/pkg/liu/internal/model"
)

// CommandRunner abstracts external process execution for compile and link steps.
type CommandRunner interface {
	// Run executes the command line and waits for it to exit. It returns the
	// combined stdout/stderr output and a non-nil error when the process
	// could not start or exited with a non-zero status.
	Run(ctx context.Context, command m.Command) (output string, err error)
}

// LocalCommandRunner runs command lines through the platform shell, so CC and
// COMPILER_FLAGS keep their shell-word meaning.
type LocalCommandRunner struct {
	shell  []string
	output io.Writer
	mu     sync.Mutex
}

// NewLocalCommandRunner constructs a LocalCommandRunner that echoes each
// command's output to output once the command has exited. A nil output
// discards it.
func NewLocalCommandRunner(output io.Writer) *LocalCommandRunner {
	return &LocalCommandRunner{
		shell:  defaultShell(),
		output: output,
	}
}

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}

	return []string{"/bin/sh", "-c"}
}

// Run executes the command line and collects its output.
func (a *LocalCommandRunner) Run(ctx context.Context, command m.Command) (string, error) {
	args := append(append([]string{}, a.shell[1:]...), command.Line())

	// #nosec G204 - the command line comes from the project's own .liu file
	cmd := exec.CommandContext(ctx, a.shell[0], args...)

	var combined bytes.Buffer

	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()

	output := combined.String()
	a.echo(output)

	return output, err
}

// echo forwards a finished command's output in one piece so concurrent
// compiles never interleave inside a diagnostic.
func (a *LocalCommandRunner) echo(output string) {
	if a.output == nil || output == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, _ = io.WriteString(a.output, output)
}
