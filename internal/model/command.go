package model

import "strings"

// CommandKind tells compile invocations apart from the link invocation.
type CommandKind string

const (
	// CommandCompile turns one source file into one object file.
	CommandCompile CommandKind = "compile"
	// CommandLink turns the ledger into the output binary.
	CommandLink CommandKind = "link"
)

// Command is an external invocation expressed as shell words. A part may
// hold several words (CC "ccache gcc", COMPILER_FLAGS "-Wall -O2"); the
// command line is handed to the platform shell as-is.
type Command struct {
	Kind  CommandKind
	Parts []string
}

// NewCommand builds a command, dropping empty parts.
func NewCommand(kind CommandKind, parts ...string) Command {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		kept = append(kept, part)
	}

	return Command{Kind: kind, Parts: kept}
}

// Line renders the command line. Parts are joined verbatim so the shell
// still splits and expands them.
func (c Command) Line() string {
	return strings.Join(c.Parts, " ")
}

func (c Command) String() string {
	return c.Line()
}
