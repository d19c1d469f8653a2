package domain

import (
	"fmt"
	"log/slog"
	"runtime"

	"liu.dev/pkg/liu/internal/adapter"
	m "liu.dev/pkg/liu/internal/model"
)

const backupSuffix = ".bak"

// ExeSuffix returns the conventional executable suffix of the host platform.
func ExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}

	return ""
}

// Replacer swaps a freshly linked "~<binary>" into the live binary path,
// keeping the previous binary as "<binary>.bak".
type Replacer struct {
	fs     adapter.SourceFSAdapter
	tracer Tracer
	trace  bool
	suffix string
}

// NewReplacer creates a Replacer. Every name it touches gains suffix, so on
// windows the files are "~main.exe", "main.exe" and "main.bak.exe".
func NewReplacer(fsAdapter adapter.SourceFSAdapter, tracer Tracer, trace bool, suffix string) *Replacer {
	if tracer == nil {
		tracer = NopTracer
	}

	return &Replacer{
		fs:     fsAdapter,
		tracer: tracer,
		trace:  trace,
		suffix: suffix,
	}
}

// Names returns the temporary, live and backup file names for binary.
func (r *Replacer) Names(binary string) (temp, live, backup m.Path) {
	return m.Path(tempPrefix + binary + r.suffix),
		m.Path(binary + r.suffix),
		m.Path(binary + backupSuffix + r.suffix)
}

// Replace runs the swap. The stale backup goes first because rename cannot
// overwrite an existing file on every platform. A missing backup or live
// binary (first build) is fine.
func (r *Replacer) Replace(binary string) error {
	temp, live, backup := r.Names(binary)

	r.emit("rm -f %s", backup)

	if err := r.fs.Remove(backup); err != nil {
		return fmt.Errorf("remove backup %s: %w", backup, err)
	}

	r.emit("mv %s %s", live, backup)

	if err := r.fs.Rename(live, backup); err != nil {
		slog.Debug("No live binary to back up", "binary", live, "error", err)
	}

	r.emit("mv %s %s", temp, live)

	if err := r.fs.Rename(temp, live); err != nil {
		return fmt.Errorf("replace %s with %s: %w", live, temp, err)
	}

	slog.Info("Replaced binary", "binary", live, "backup", backup)

	return nil
}

func (r *Replacer) emit(format string, args ...any) {
	if r.trace {
		r.tracer.Trace(fmt.Sprintf(format, args...))
	}
}
