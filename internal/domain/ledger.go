package domain

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// ErrLedgerFull is returned when an append would push the rendered object
// list past the ledger limit.
var ErrLedgerFull = errors.New("length of object paths exceeds ledger limit")

// Ledger is the ordered list of object files discovered during one build.
// Entries keep append order and are safe to append from several goroutines.
type Ledger struct {
	mu        sync.Mutex
	objectDir string
	limit     int
	entries   []string
	size      int
}

// NewLedger creates an empty ledger whose entries live under objectDir.
// limit bounds the rendered length in bytes; zero or less means unbounded.
func NewLedger(objectDir string, limit int) *Ledger {
	return &Ledger{
		objectDir: filepath.ToSlash(objectDir),
		limit:     limit,
	}
}

// Append records the object for rel, a slash separated path relative to the
// object directory, and returns the full object path.
func (l *Ledger) Append(rel string) (string, error) {
	entry := path.Join(l.objectDir, rel)

	l.mu.Lock()
	defer l.mu.Unlock()

	size := l.size + len(entry)
	if len(l.entries) > 0 {
		size++
	}

	if l.limit > 0 && size > l.limit {
		return "", fmt.Errorf("append %s: %w (%d > %d bytes)", entry, ErrLedgerFull, size, l.limit)
	}

	l.entries = append(l.entries, entry)
	l.size = size

	return entry, nil
}

// Render returns the entries joined by single spaces, ready to be used as
// the object argument list of the link command.
func (l *Ledger) Render() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return strings.Join(l.entries, " ")
}

// Entries returns a copy of the recorded object paths.
func (l *Ledger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.entries...)
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
