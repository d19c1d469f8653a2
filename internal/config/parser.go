package config

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"
	"unicode"
)

const (
	// DefaultMaxLineLength bounds a single .liu line.
	DefaultMaxLineLength = 1 << 20

	// maxKeyLength mirrors the longest key token the format accepts; longer
	// tokens are skipped together with the rest of their line.
	maxKeyLength = 255
)

const (
	warnScanKey   = "sanity check failed, could not scan key"
	warnScanValue = "sanity check failed, unable to scan value"
)

var errLineTooLong = errors.New("line too long")

// Parser tokenizes .liu files.
type Parser struct {
	// MaxLineLength is the longest line accepted before parsing stops with a
	// warning. Zero means DefaultMaxLineLength.
	MaxLineLength int
}

// NewParser returns a Parser with default limits.
func NewParser() *Parser {
	return &Parser{MaxLineLength: DefaultMaxLineLength}
}

// Parse reads a .liu file with the default parser.
func Parse(r io.Reader) (*Config, error) {
	return NewParser().Parse(r)
}

// Parse reads key/value lines from r. Each line holds a key token followed
// by the rest of the line as its value. Unknown keys are skipped, a second
// occurrence of a recognized key is a *RedefinitionError. A read failure
// stops parsing with a warning and keeps what was read so far.
func (p *Parser) Parse(r io.Reader) (*Config, error) {
	cfg := newConfig()
	reader := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, readErr := p.readLine(reader)
		eof := errors.Is(readErr, io.EOF)

		if readErr != nil && !eof {
			if err := p.abort(cfg, line, lineNo, readErr); err != nil {
				return nil, err
			}

			break
		}

		if err := cfg.store(line, lineNo); err != nil {
			return nil, err
		}

		if eof {
			break
		}
	}

	cfg.resolve()

	return cfg, nil
}

// abort records why parsing stopped. A recognized key on a line that could
// not be read whole still counts for redefinition checks.
func (p *Parser) abort(cfg *Config, partial string, lineNo int, cause error) error {
	name, _, _ := splitLine(partial)
	if key, ok := IsKey(name); ok && len(name) < len(strings.TrimLeftFunc(partial, unicode.IsSpace)) {
		if _, set := cfg.values[key]; set {
			return &RedefinitionError{Key: key, Line: lineNo}
		}

		slog.Warn(warnScanValue, "key", key, "line", lineNo, "error", cause)
		cfg.Warnings = append(cfg.Warnings, warnScanValue)

		return nil
	}

	slog.Warn(warnScanKey, "line", lineNo, "error", cause)
	cfg.Warnings = append(cfg.Warnings, warnScanKey)

	return nil
}

func (c *Config) store(line string, lineNo int) error {
	name, value, ok := splitLine(line)
	if !ok || len(name) > maxKeyLength {
		return nil
	}

	key, known := IsKey(name)
	if !known {
		return nil
	}

	if _, set := c.values[key]; set {
		return &RedefinitionError{Key: key, Line: lineNo}
	}

	c.values[key] = value

	return nil
}

// readLine returns the next line without its terminator. A line longer than
// the limit yields its prefix and errLineTooLong.
func (p *Parser) readLine(reader *bufio.Reader) (string, error) {
	limit := p.MaxLineLength
	if limit <= 0 {
		limit = DefaultMaxLineLength
	}

	var line []byte

	for {
		chunk, err := reader.ReadSlice('\n')
		line = append(line, chunk...)

		if len(line) > limit {
			// The prefix always covers a whole key token.
			keep := min(max(limit, maxKeyLength+1), len(line))
			text := strings.TrimSuffix(string(line[:keep]), "\n")

			return strings.TrimSuffix(text, "\r"), errLineTooLong
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		text := strings.TrimSuffix(string(line), "\n")
		text = strings.TrimSuffix(text, "\r")

		return text, err
	}
}

// splitLine separates the key token from the value. The value loses its
// leading whitespace and keeps everything else.
func splitLine(line string) (string, string, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return "", "", false
	}

	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	if end < 0 {
		return trimmed, "", true
	}

	return trimmed[:end], strings.TrimLeftFunc(trimmed[end:], unicode.IsSpace), true
}
