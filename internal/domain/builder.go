package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"liu.dev/pkg/liu/internal/adapter"
	"liu.dev/pkg/liu/internal/config"
	m "liu.dev/pkg/liu/internal/model"
)

// ErrNoSources is returned when the source tree holds no translation unit.
var ErrNoSources = errors.New("no source files found")

// BuildOptions tune a single build.
type BuildOptions struct {
	// Jobs is the number of concurrent compiler processes. Values below 2
	// compile strictly sequentially.
	Jobs int
	// LedgerLimit bounds the rendered object list in bytes; zero is unbounded.
	LedgerLimit int
	// ExeSuffix is appended to the binary names (".exe" on windows).
	ExeSuffix string
}

// Builder is the state of one build invocation: it owns its settings,
// ledger and collaborators, so separate builds never share anything.
type Builder struct {
	cfg      *config.Config
	fs       adapter.SourceFSAdapter
	compiler Compiler
	replacer *Replacer
	tracer   Tracer
	opts     BuildOptions
	ledger   *Ledger
}

// NewBuilder wires a Builder for cfg.
func NewBuilder(
	cfg *config.Config,
	fsAdapter adapter.SourceFSAdapter,
	compiler Compiler,
	tracer Tracer,
	opts BuildOptions,
) *Builder {
	if tracer == nil {
		tracer = NopTracer
	}

	return &Builder{
		cfg:      cfg,
		fs:       fsAdapter,
		compiler: compiler,
		replacer: NewReplacer(fsAdapter, tracer, cfg.Trace(), opts.ExeSuffix),
		tracer:   tracer,
		opts:     opts,
		ledger:   NewLedger(cfg.ObjectDir(), opts.LedgerLimit),
	}
}

// Ledger exposes the objects recorded so far.
func (b *Builder) Ledger() *Ledger {
	return b.ledger
}

// Build compiles every .c/.cpp file under the source directory, links the
// objects and, in replace mode, swaps the new binary in. A failed compile
// stops the traversal and nothing is linked; a failed link skips the swap.
// The returned report is never nil.
func (b *Builder) Build(ctx context.Context) (*m.BuildReport, error) {
	started := time.Now()
	report := &m.BuildReport{}

	defer func() {
		report.Duration = time.Since(started)
	}()

	binary := b.cfg.BinaryName() + b.opts.ExeSuffix
	report.Link = m.LinkReport{Binary: m.Path(binary), Status: m.Skipped}

	units, err := b.compileTree(ctx)
	report.Units = units

	if err != nil {
		return report, err
	}

	if b.ledger.Len() == 0 {
		return report, fmt.Errorf("%w under %s", ErrNoSources, b.cfg.SourceDir())
	}

	replace := b.cfg.ReplaceBinary()

	invocation, err := b.compiler.Link(ctx, b.ledger.Render(), binary, replace)
	report.Link.Command = invocation.Command.Line()
	report.Link.Duration = invocation.Duration
	report.Link.Output = invocation.Output

	if err != nil {
		report.Link.Status = m.Failed
		return report, err
	}

	report.Link.Status = m.Succeeded

	if !replace {
		return report, nil
	}

	if err := b.replacer.Replace(b.cfg.BinaryName()); err != nil {
		return report, err
	}

	report.Replaced = true

	return report, nil
}

// compileTree walks the source tree, mirrors directories and compiles each
// translation unit. Ledger order is discovery order regardless of Jobs.
func (b *Builder) compileTree(ctx context.Context) ([]m.UnitReport, error) {
	group, groupCtx := errgroup.WithContext(ctx)

	jobs := b.opts.Jobs
	if jobs > 1 {
		group.SetLimit(jobs)
	}

	var units []*m.UnitReport

	walkErr := func() error {
		// The object tree may sit inside the source tree; it is never walked.
		for entry, err := range b.fs.Walk(m.Path(b.cfg.SourceDir()), m.Path(b.cfg.ObjectDir())) {
			if err != nil {
				return err
			}

			if err := groupCtx.Err(); err != nil {
				return err
			}

			switch entry.Kind {
			case m.KindDir:
				if err := b.mirror(entry); err != nil {
					return err
				}
			case m.KindFile:
				if !m.IsSource(entry.Rel) {
					continue
				}

				object, err := b.ledger.Append(m.ObjectName(entry.Rel))
				if err != nil {
					return err
				}

				unit := m.Unit{Source: entry.Path, Object: m.Path(object)}
				rep := &m.UnitReport{Source: unit.Source, Object: unit.Object, Status: m.Pending}
				units = append(units, rep)

				if jobs <= 1 {
					if err := b.compile(groupCtx, ctx, unit, rep); err != nil {
						return err
					}

					continue
				}

				// A failed sibling stops dispatch; compiles already running
				// finish on ctx.
				group.Go(func() error {
					return b.compile(groupCtx, ctx, unit, rep)
				})
			default:
				slog.Debug("Skipping entry", "path", entry.Path, "kind", entry.Kind)
			}
		}

		return nil
	}()

	waitErr := group.Wait()

	reports := make([]m.UnitReport, len(units))
	for i, rep := range units {
		reports[i] = *rep
	}

	if waitErr != nil {
		return reports, waitErr
	}

	return reports, walkErr
}

func (b *Builder) mirror(entry m.Entry) error {
	dir := path.Join(b.ledger.objectDir, entry.Rel)

	if b.cfg.Trace() {
		b.tracer.Trace("mkdir -p " + dir)
	}

	if err := b.fs.MkdirAll(m.Path(dir)); err != nil {
		return fmt.Errorf("create object directory %s: %w", dir, err)
	}

	return nil
}

// compile runs one unit. dispatchCtx decides whether the unit starts at all,
// runCtx bounds the compiler process.
func (b *Builder) compile(dispatchCtx, runCtx context.Context, unit m.Unit, rep *m.UnitReport) error {
	if err := dispatchCtx.Err(); err != nil {
		rep.Status = m.Skipped
		return err
	}

	invocation, err := b.compiler.Compile(runCtx, unit.Source, unit.Object)
	rep.Command = invocation.Command.Line()
	rep.Duration = invocation.Duration
	rep.Output = invocation.Output

	if err != nil {
		// An interrupted compiler says nothing about the source.
		if ctxErr := runCtx.Err(); ctxErr != nil {
			rep.Status = m.Skipped
			return ctxErr
		}

		rep.Status = m.Failed
		return err
	}

	rep.Status = m.Succeeded

	return nil
}
