package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	m "liu.dev/pkg/liu/internal/model"
)

// ANSI color indexes used for the diagnostic prefixes.
const (
	colorRed    = lipgloss.Color("1")
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorBlue   = lipgloss.Color("4")
)

// SimpleUI writes plain line-oriented output. Colors are only emitted when
// the destination is a terminal.
type SimpleUI struct {
	streams Streams
	mu      sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(streams Streams) *SimpleUI {
	return &SimpleUI{streams: streams}
}

// Trace prints line as-is.
func (s *SimpleUI) Trace(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintln(s.streams.OutOrStdout(), line)
}

// DisplayWarning prints a "warning" diagnostic.
func (s *SimpleUI) DisplayWarning(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	out := s.streams.OutOrStdout()
	s.printf(out, "%s %s\n", label(out, "warning", colorYellow), message)
}

// DisplayFatal prints a "fatal" diagnostic to the error stream.
func (s *SimpleUI) DisplayFatal(err error) {
	if err == nil {
		return
	}

	out := s.streams.ErrOrStderr()
	s.printf(out, "%s %v\n", label(out, "fatal", colorRed), err)
}

// DisplayTodo announces a step that is not implemented yet.
func (s *SimpleUI) DisplayTodo(ctx context.Context, step string) {
	if err := ctx.Err(); err != nil {
		return
	}

	out := s.streams.OutOrStdout()
	s.printf(out, "%s %s\n", label(out, "todo", colorBlue), step)
}

// DisplayBuildReport prints a per-unit summary table.
func (s *SimpleUI) DisplayBuildReport(ctx context.Context, report *m.BuildReport) {
	if err := ctx.Err(); err != nil || report == nil || len(report.Units) == 0 {
		return
	}

	out := s.streams.OutOrStdout()
	s.printf(out, "\n%s", renderBuildTable(report))

	if report.Link.Status == m.Succeeded {
		s.printf(out, "%s %s\n", label(out, "linked", colorGreen), report.Link.Binary)
	}
}

func renderBuildTable(report *m.BuildReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Object", "Status", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
	})

	for _, unit := range report.Units {
		table.Append([]string{
			string(unit.Source),
			string(unit.Object),
			unit.Status.String(),
			unit.Duration.Round(time.Millisecond).String(),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total units %d", len(report.Units)),
		"link",
		report.Link.Status.String(),
		report.Duration.Round(time.Millisecond).String(),
	})

	table.Render()

	return tableBuffer.String()
}

// Prompt prints question and reads one answer line.
func (s *SimpleUI) Prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.printf(s.streams.OutOrStdout(), "%s", question)

	return readLine(s.streams.InOrStdin())
}

// Confirm asks a yes/no question. Only the first character of the answer
// counts; the rest of the line is discarded.
func (s *SimpleUI) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	choices := "[y/N]"
	if defaultYes {
		choices = "[Y/n]"
	}

	out := s.streams.OutOrStdout()

	answer, err := s.Prompt(ctx, fmt.Sprintf("%s %s %s ", label(out, "warning", colorYellow), question, choices))
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	if answer == "" {
		return defaultYes && err == nil, nil
	}

	switch answer[0] {
	case 'y', 'Y':
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads byte by byte so no input past the newline is consumed;
// the next prompt sees the following line.
func readLine(r io.Reader) (string, error) {
	var (
		line strings.Builder
		buf  [1]byte
	)

	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(line.String(), "\r"), nil
			}

			line.WriteByte(buf[0])
		}

		if err != nil {
			if errors.Is(err, io.EOF) && line.Len() > 0 {
				return line.String(), nil
			}

			return line.String(), err
		}
	}
}

func label(out io.Writer, text string, color lipgloss.Color) string {
	return lipgloss.NewRenderer(out).NewStyle().Bold(true).Foreground(color).Render(text)
}

func (s *SimpleUI) printf(out io.Writer, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(out, format, args...)
}
