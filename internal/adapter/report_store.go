package adapter

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	m "liu.dev/pkg/liu/internal/model"
)

// ReportStore persists build reports.
type ReportStore interface {
	SaveReport(path m.Path, report *m.BuildReport) error
}

// YAMLReportStore stores reports as YAML documents.
type YAMLReportStore struct {
	fs afero.Fs
}

// NewReportStore creates a store on the real filesystem.
func NewReportStore() *YAMLReportStore {
	return NewYAMLReportStore(afero.NewOsFs())
}

// NewYAMLReportStore creates a store backed by fsys.
func NewYAMLReportStore(fsys afero.Fs) *YAMLReportStore {
	return &YAMLReportStore{fs: fsys}
}

// SaveReport writes report to path, creating the parent directory.
func (s *YAMLReportStore) SaveReport(path m.Path, report *m.BuildReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}
