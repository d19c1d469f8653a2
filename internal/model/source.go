// Package model defines the data structures shared by the build layers.
package model

import (
	"path"
	"strings"
)

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// EntryKind classifies an entry met while walking the source tree.
type EntryKind int

const (
	// KindOther covers anything that is neither a directory nor a regular
	// file: symlinks, devices, sockets, pipes.
	KindOther EntryKind = iota
	// KindDir is a directory.
	KindDir
	// KindFile is a regular file.
	KindFile
)

func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

// Entry is a single node visited during traversal.
type Entry struct {
	// Path is the entry path as reached from the traversal root.
	Path Path
	// Rel is the slash separated path relative to the root ("." for the root).
	Rel  string
	Kind EntryKind
}

// SourceExtensions lists the translation unit extensions that get compiled.
var SourceExtensions = []string{".c", ".cpp"}

// IsSource reports whether rel names a translation unit. The extension
// must match exactly, so "a.C" or "a.cc" are not sources.
func IsSource(rel string) bool {
	ext := path.Ext(rel)
	for _, candidate := range SourceExtensions {
		if ext == candidate {
			return true
		}
	}

	return false
}

// ObjectName replaces the extension of rel with ".o".
func ObjectName(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + ".o"
}

// Unit is one translation unit: a source file and the object it compiles to.
type Unit struct {
	Source Path
	Object Path
}
