// Package controller provides the user-facing output and prompts of liu.
package controller

import (
	"context"
	"io"

	m "liu.dev/pkg/liu/internal/model"
)

// Streams supplies the input and output of the UI. *cobra.Command
// satisfies it.
type Streams interface {
	InOrStdin() io.Reader
	OutOrStdout() io.Writer
	ErrOrStderr() io.Writer
}

// UI defines the diagnostics and prompts shown by the commands.
// Implementations can use different output methods.
type UI interface {
	// Trace echoes a command line or filesystem mutation.
	Trace(line string)
	DisplayWarning(ctx context.Context, message string)
	DisplayFatal(err error)
	DisplayTodo(ctx context.Context, step string)
	DisplayBuildReport(ctx context.Context, report *m.BuildReport)
	// Prompt prints question and returns the answer line without its terminator.
	Prompt(ctx context.Context, question string) (string, error)
	// Confirm asks a yes/no question; a bare Enter picks defaultYes.
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

type staticStreams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func (s staticStreams) InOrStdin() io.Reader   { return s.in }
func (s staticStreams) OutOrStdout() io.Writer { return s.out }
func (s staticStreams) ErrOrStderr() io.Writer { return s.err }

// NewStreams bundles fixed readers and writers as Streams.
func NewStreams(in io.Reader, out, errOut io.Writer) Streams {
	return staticStreams{in: in, out: out, err: errOut}
}
