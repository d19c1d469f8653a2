package domain

import (
	"fmt"
	"log/slog"

	"liu.dev/pkg/liu/internal/adapter"
	m "liu.dev/pkg/liu/internal/model"
)

// Cleaner deletes build outputs.
type Cleaner struct {
	fs     adapter.SourceFSAdapter
	tracer Tracer
	trace  bool
}

// NewCleaner creates a Cleaner.
func NewCleaner(fsAdapter adapter.SourceFSAdapter, tracer Tracer, trace bool) *Cleaner {
	if tracer == nil {
		tracer = NopTracer
	}

	return &Cleaner{fs: fsAdapter, tracer: tracer, trace: trace}
}

// RemoveObjects deletes the object tree recursively.
func (c *Cleaner) RemoveObjects(objectDir m.Path) error {
	if c.trace {
		c.tracer.Trace(fmt.Sprintf("rm -rf %s", objectDir))
	}

	if err := c.fs.RemoveAll(objectDir); err != nil {
		return fmt.Errorf("remove %s: %w", objectDir, err)
	}

	slog.Info("Removed object directory", "path", objectDir)

	return nil
}

// RemoveBinary deletes the linked binary. A missing binary is not an error.
func (c *Cleaner) RemoveBinary(binary m.Path) error {
	if c.trace {
		c.tracer.Trace(fmt.Sprintf("rm %s", binary))
	}

	if err := c.fs.Remove(binary); err != nil {
		return fmt.Errorf("remove %s: %w", binary, err)
	}

	slog.Info("Removed binary", "path", binary)

	return nil
}
