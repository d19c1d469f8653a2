// Package config reads the .liu project file and exposes the resolved settings.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Key is one of the recognized .liu setting names.
type Key string

// Recognized keys. Any other key in a .liu file is ignored.
const (
	KeySourceDir     Key = "SOURCE_DIR"
	KeyObjectDir     Key = "OBJECT_DIR"
	KeyBinaryName    Key = "BINARY_NAME"
	KeyCompilerFlags Key = "COMPILER_FLAGS"
	KeyCC            Key = "CC"
	KeyTraceLog      Key = "TRACELOG"
	KeyReplaceBinary Key = "REPLACE_BINARY"
)

// Keys lists every recognized key.
var Keys = []Key{
	KeySourceDir,
	KeyObjectDir,
	KeyBinaryName,
	KeyCompilerFlags,
	KeyCC,
	KeyTraceLog,
	KeyReplaceBinary,
}

const (
	// FileName is the project file looked up in the working directory.
	FileName = ".liu"

	defaultSourceDir  = "src"
	defaultObjectDir  = "obj"
	defaultBinaryName = "main"

	// flagOff disables a presence flag as if the key were absent.
	flagOff = "off"
)

var defaults = map[Key]string{
	KeySourceDir:  defaultSourceDir,
	KeyObjectDir:  defaultObjectDir,
	KeyBinaryName: defaultBinaryName,
}

var flagKeys = []Key{KeyTraceLog, KeyReplaceBinary}

// ErrMissingCompiler is returned by Validate when CC is not set.
var ErrMissingCompiler = errors.New("CC is not set")

// RedefinitionError reports a recognized key that appears twice in one file.
type RedefinitionError struct {
	Key  Key
	Line int
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("redefinition of %s", e.Key)
}

// Config holds the settings of one .liu file with defaults applied. It is
// not modified after Parse returns.
type Config struct {
	values map[Key]string

	// Warnings collects non-fatal problems met while parsing.
	Warnings []string
}

// IsKey reports whether name is a recognized key.
func IsKey(name string) (Key, bool) {
	for _, key := range Keys {
		if string(key) == name {
			return key, true
		}
	}

	return "", false
}

func newConfig() *Config {
	return &Config{values: make(map[Key]string, len(Keys))}
}

// New builds a Config from explicit values, as if they had been read from a
// file. Unknown keys are dropped.
func New(values map[Key]string) *Config {
	cfg := newConfig()

	for key, value := range values {
		if _, ok := IsKey(string(key)); ok {
			cfg.values[key] = value
		}
	}

	cfg.resolve()

	return cfg
}

func (c *Config) resolve() {
	for key, value := range defaults {
		if _, ok := c.values[key]; !ok {
			c.values[key] = value
		}
	}

	for _, key := range flagKeys {
		if value, ok := c.values[key]; ok && value == flagOff {
			delete(c.values, key)
		}
	}
}

// Lookup returns the value stored for key and whether it is set.
func (c *Config) Lookup(key Key) (string, bool) {
	value, ok := c.values[key]
	return value, ok
}

// SourceDir is the traversal root.
func (c *Config) SourceDir() string { return c.values[KeySourceDir] }

// ObjectDir is the root of the mirrored object tree.
func (c *Config) ObjectDir() string { return c.values[KeyObjectDir] }

// BinaryName is the link output name, without any platform suffix.
func (c *Config) BinaryName() string { return c.values[KeyBinaryName] }

// CompilerFlags are passed verbatim to every compile invocation.
func (c *Config) CompilerFlags() string { return c.values[KeyCompilerFlags] }

// CC is the compiler executable.
func (c *Config) CC() string { return c.values[KeyCC] }

// Trace reports whether command lines and filesystem mutations are echoed.
func (c *Config) Trace() bool {
	_, ok := c.values[KeyTraceLog]
	return ok
}

// ReplaceBinary reports whether the binary is linked under a temporary
// name and swapped into place.
func (c *Config) ReplaceBinary() bool {
	_, ok := c.values[KeyReplaceBinary]
	return ok
}

// Validate checks the settings a build cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CC()) == "" {
		return ErrMissingCompiler
	}

	return nil
}

// Template renders the starter .liu file written by "liu generate".
func Template(binaryName string) string {
	return fmt.Sprintf("%s %s\n%s -Wall -Werror -Wextra\n%s gcc", KeyBinaryName, binaryName, KeyCompilerFlags, KeyCC)
}
