// Package adapter contains infrastructure adapters for the liu build layers.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	m "liu.dev/pkg/liu/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the build relies on.
// It hides direct `os` access so the build logic can run against an
// in-memory filesystem in tests.
//
//nolint:interfacebloat // A richer interface keeps domain logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk returns a lazy depth-first traversal of root. Entries are visited
	// physically: symlinks are reported as KindOther and never followed.
	// Ranging the sequence again restarts the walk. Paths listed in exclude
	// are neither yielded nor descended into.
	Walk(root m.Path, exclude ...m.Path) iter.Seq2[m.Entry, error]

	// MkdirAll creates a directory and its parents. An existing directory is
	// not an error.
	MkdirAll(path m.Path) error

	// Exists reports whether path exists, without following a final symlink.
	Exists(path m.Path) (bool, error)

	// Remove deletes a single file. A missing file is not an error.
	Remove(path m.Path) error

	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error

	// Rename moves a file, replacing the destination where the platform allows.
	Rename(from, to m.Path) error

	// ReadFile loads a file's contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
}

// LocalSourceFSAdapter implements SourceFSAdapter on top of an afero.Fs.
type LocalSourceFSAdapter struct {
	fs afero.Fs
}

// NewLocalSourceFSAdapter constructs an adapter backed by the real filesystem.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewSourceFSAdapter(afero.NewOsFs())
}

// NewSourceFSAdapter constructs an adapter backed by fsys.
func NewSourceFSAdapter(fsys afero.Fs) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{fs: fsys}
}

// Walk traverses root depth-first, children in lexical order.
func (a *LocalSourceFSAdapter) Walk(root m.Path, exclude ...m.Path) iter.Seq2[m.Entry, error] {
	skip := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		skip[filepath.Clean(string(p))] = struct{}{}
	}

	return func(yield func(m.Entry, error) bool) {
		rootPath := filepath.Clean(string(root))
		w := walker{fs: a, skip: skip, yield: yield}

		info, err := a.lstat(rootPath)
		if err != nil {
			yield(m.Entry{Path: m.Path(rootPath), Rel: "."}, fmt.Errorf("walk %s: %w", rootPath, err))
			return
		}

		w.visit(rootPath, ".", info)
	}
}

type walker struct {
	fs    *LocalSourceFSAdapter
	skip  map[string]struct{}
	yield func(m.Entry, error) bool
}

// visit yields current and its subtree; it returns false once the
// consumer stops or an error has been yielded.
func (w *walker) visit(current, rel string, info os.FileInfo) bool {
	if _, excluded := w.skip[current]; excluded {
		return true
	}

	entry := m.Entry{Path: m.Path(current), Rel: rel, Kind: kindOf(info)}
	if !w.yield(entry, nil) {
		return false
	}

	if entry.Kind != m.KindDir {
		return true
	}

	children, err := afero.ReadDir(w.fs.fs, current)
	if err != nil {
		w.yield(entry, fmt.Errorf("read dir %s: %w", current, err))
		return false
	}

	for _, child := range children {
		childPath := filepath.Join(current, child.Name())
		childRel := path.Join(rel, child.Name())

		if !w.visit(childPath, childRel, child) {
			return false
		}
	}

	return true
}

func kindOf(info os.FileInfo) m.EntryKind {
	switch {
	case info.IsDir():
		return m.KindDir
	case info.Mode().IsRegular():
		return m.KindFile
	default:
		return m.KindOther
	}
}

func (a *LocalSourceFSAdapter) lstat(name string) (os.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}

	return a.fs.Stat(name)
}

// MkdirAll creates path and any missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return a.fs.MkdirAll(string(path), 0o750)
}

// Exists reports whether path exists.
func (a *LocalSourceFSAdapter) Exists(path m.Path) (bool, error) {
	_, err := a.lstat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// Remove deletes a single file, ignoring a missing one.
func (a *LocalSourceFSAdapter) Remove(path m.Path) error {
	err := a.fs.Remove(string(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(path m.Path) error {
	return a.fs.RemoveAll(string(path))
}

// Rename moves from to to.
func (a *LocalSourceFSAdapter) Rename(from, to m.Path) error {
	return a.fs.Rename(string(from), string(to))
}

// ReadFile loads file contents.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return afero.ReadFile(a.fs, string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, string(path), content, perm)
}
