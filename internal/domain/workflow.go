package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"liu.dev/pkg/liu/internal/adapter"
	"liu.dev/pkg/liu/internal/config"
	"liu.dev/pkg/liu/internal/controller"
	m "liu.dev/pkg/liu/internal/model"
)

// ErrEmptyBinaryName is returned by Generate when no binary name was entered.
var ErrEmptyBinaryName = errors.New("no binary name given")

// maxBinaryNameLength bounds the name accepted by Generate.
const maxBinaryNameLength = 256

const (
	stepRunTests = "run_tests"
	stepDebug    = "debug"
	stepRun      = "run"
)

// BuildArgs contains the arguments of one build.
type BuildArgs struct {
	Config      *config.Config
	Jobs        int
	LedgerLimit int
	// Report is where the YAML build report goes; empty writes none.
	Report m.Path
}

// GenerateArgs contains the arguments for writing a starter project file.
type GenerateArgs struct {
	ConfigPath m.Path
}

// Workflow drives the liu commands.
type Workflow interface {
	LoadConfig(ctx context.Context, path m.Path) (*config.Config, error)
	Build(ctx context.Context, args BuildArgs) error
	Clean(ctx context.Context, cfg *config.Config) error
	Generate(ctx context.Context, args GenerateArgs) error
	Test(ctx context.Context) error
	Debug(ctx context.Context) error
	Run(ctx context.Context) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI

	runner    adapter.CommandRunner
	exeSuffix string
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	runner adapter.CommandRunner,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		runner:          runner,
		exeSuffix:       ExeSuffix(),
	}
}

// LoadConfig parses the project file at path and shows its warnings.
func (w *workflow) LoadConfig(ctx context.Context, path m.Path) (*config.Config, error) {
	data, err := w.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	cfg, err := config.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, warning := range cfg.Warnings {
		w.DisplayWarning(ctx, warning)
	}

	return cfg, nil
}

func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	cfg := args.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	compiler := NewCompiler(CompilerConfig{
		CC:    cfg.CC(),
		Flags: cfg.CompilerFlags(),
		Trace: cfg.Trace(),
	}, w.runner, w.UI)

	builder := NewBuilder(cfg, w.SourceFSAdapter, compiler, w.UI, BuildOptions{
		Jobs:        args.Jobs,
		LedgerLimit: args.LedgerLimit,
		ExeSuffix:   w.exeSuffix,
	})

	report, buildErr := builder.Build(ctx)
	w.DisplayBuildReport(ctx, report)

	if buildErr != nil {
		slog.Error("Build failed", "error", buildErr, "failed_units", len(report.Failed()))
	}

	if args.Report != "" {
		if err := w.SaveReport(args.Report, report); err != nil {
			return errors.Join(buildErr, fmt.Errorf("save report: %w", err))
		}
	}

	return buildErr
}

func (w *workflow) Clean(ctx context.Context, cfg *config.Config) error {
	cleaner := NewCleaner(w.SourceFSAdapter, w.UI, cfg.Trace())

	w.DisplayWarning(ctx, "this will delete all object files and generated binaries")

	removeObjects, err := w.Confirm(ctx, "exec: rm -rf "+cfg.ObjectDir(), true)
	if err != nil {
		return fmt.Errorf("read answer: %w", err)
	}

	if removeObjects {
		if err := cleaner.RemoveObjects(m.Path(cfg.ObjectDir())); err != nil {
			return err
		}
	}

	binary := cfg.BinaryName() + w.exeSuffix

	removeBinary, err := w.Confirm(ctx, "exec: rm "+binary, false)
	if err != nil {
		return fmt.Errorf("read answer: %w", err)
	}

	if removeBinary {
		return cleaner.RemoveBinary(m.Path(binary))
	}

	return nil
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	exists, err := w.Exists(args.ConfigPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", args.ConfigPath, err)
	}

	if exists {
		w.DisplayWarning(ctx, fmt.Sprintf("%s file already exists, this will overwrite it", args.ConfigPath))
	}

	answer, err := w.Prompt(ctx, "Enter output binary name (eg. my_program): ")
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read binary name: %w", err)
	}

	name := strings.TrimSpace(answer)
	if len(name) > maxBinaryNameLength {
		name = name[:maxBinaryNameLength]
	}

	if name == "" {
		return ErrEmptyBinaryName
	}

	if found, _ := w.Exists(m.Path(name)); !found {
		w.DisplayWarning(ctx, fmt.Sprintf("specified file %s does not exist, continuing", name))
	}

	if err := w.WriteFile(args.ConfigPath, []byte(config.Template(name)), 0o644); err != nil {
		return fmt.Errorf("could not create %s file: %w", args.ConfigPath, err)
	}

	slog.Info("Generated project file", "path", args.ConfigPath, "binary", name)

	return nil
}

func (w *workflow) Test(ctx context.Context) error {
	w.DisplayTodo(ctx, stepRunTests)
	return nil
}

func (w *workflow) Debug(ctx context.Context) error {
	w.DisplayTodo(ctx, stepDebug)
	return nil
}

func (w *workflow) Run(ctx context.Context) error {
	w.DisplayTodo(ctx, stepRun)
	return nil
}
