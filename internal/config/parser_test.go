package config

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AllKeysOnce(t *testing.T) {
	input := strings.Join([]string{
		"SOURCE_DIR source",
		"OBJECT_DIR build/obj",
		"BINARY_NAME app",
		"COMPILER_FLAGS -Wall -O2   -DNAME=x",
		"CC   clang",
		"TRACELOG on",
		"REPLACE_BINARY yes",
	}, "\n")

	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "source", cfg.SourceDir())
	assert.Equal(t, "build/obj", cfg.ObjectDir())
	assert.Equal(t, "app", cfg.BinaryName())
	assert.Equal(t, "-Wall -O2   -DNAME=x", cfg.CompilerFlags())
	assert.Equal(t, "clang", cfg.CC())
	assert.True(t, cfg.Trace())
	assert.True(t, cfg.ReplaceBinary())
	assert.Empty(t, cfg.Warnings)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("CC gcc\n"))
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.SourceDir())
	assert.Equal(t, "obj", cfg.ObjectDir())
	assert.Equal(t, "main", cfg.BinaryName())
	assert.Equal(t, "", cfg.CompilerFlags())
	assert.False(t, cfg.Trace())
	assert.False(t, cfg.ReplaceBinary())

	_, set := cfg.Lookup(KeyCompilerFlags)
	assert.False(t, set)
}

func TestParse_EmptyInput(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, "obj", cfg.ObjectDir())
	assert.ErrorIs(t, cfg.Validate(), ErrMissingCompiler)
}

func TestParse_Redefinition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   Key
		line  int
	}{
		{"same value", "CC gcc\nCC gcc\n", KeyCC, 2},
		{"different values", "CC gcc\nBINARY_NAME x\nCC clang\n", KeyCC, 3},
		{"empty then set", "TRACELOG\nTRACELOG on", KeyTraceLog, 2},
		{"off is still a definition", "REPLACE_BINARY off\nREPLACE_BINARY on\n", KeyReplaceBinary, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, cfg)

			var redefinition *RedefinitionError
			require.True(t, errors.As(err, &redefinition))
			assert.Equal(t, tt.key, redefinition.Key)
			assert.Equal(t, tt.line, redefinition.Line)
			assert.Equal(t, "redefinition of "+string(tt.key), err.Error())
		})
	}
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	input := "# a comment line\nLDFLAGS -lm\nCC gcc\nLDFLAGS again twice\ncc lowercase\n"

	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.CC())
	assert.Empty(t, cfg.Warnings)
}

func TestParse_UnknownKeyValueNotReadAsKey(t *testing.T) {
	cfg, err := Parse(strings.NewReader("UNKNOWN CC clang\nCC gcc\n"))
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.CC())
}

func TestParse_FlagsOffEqualsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		trace   bool
		replace bool
	}{
		{"absent", "CC gcc\n", false, false},
		{"off", "TRACELOG off\nREPLACE_BINARY off\n", false, false},
		{"empty value", "TRACELOG\nREPLACE_BINARY \n", true, true},
		{"any value", "TRACELOG 0\nREPLACE_BINARY false\n", true, true},
		{"OFF is not off", "TRACELOG OFF\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.trace, cfg.Trace())
			assert.Equal(t, tt.replace, cfg.ReplaceBinary())
		})
	}
}

func TestParse_Whitespace(t *testing.T) {
	input := "\n\n   CC \t gcc -m64\r\n\tBINARY_NAME  my program\n"

	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "gcc -m64", cfg.CC())
	assert.Equal(t, "my program", cfg.BinaryName())
}

func TestParse_LongKeySkipped(t *testing.T) {
	input := strings.Repeat("K", maxKeyLength+1) + " value\nCC gcc\n"

	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.CC())
}

func TestParse_LongValueStopsWithWarning(t *testing.T) {
	input := "CC gcc\nCOMPILER_FLAGS " + strings.Repeat("x", 64) + "\nBINARY_NAME late\n"

	parser := &Parser{MaxLineLength: 32}
	cfg, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.CC())
	assert.Equal(t, "main", cfg.BinaryName(), "parsing stops at the failing line")
	_, set := cfg.Lookup(KeyCompilerFlags)
	assert.False(t, set)
	assert.Equal(t, []string{warnScanValue}, cfg.Warnings)
}

func TestParse_TinyLineLimitStillScansKey(t *testing.T) {
	parser := &Parser{MaxLineLength: 8}
	cfg, err := parser.Parse(strings.NewReader("SOURCE_DIR verylongvalue\nCC gcc\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{warnScanValue}, cfg.Warnings)
	assert.Equal(t, "src", cfg.SourceDir())
}

func TestParse_TinyLineLimitRedefinition(t *testing.T) {
	parser := &Parser{MaxLineLength: 8}
	_, err := parser.Parse(strings.NewReader("CC gcc\nCC clang-with-a-long-name\n"))

	var redefinition *RedefinitionError
	require.ErrorAs(t, err, &redefinition)
	assert.Equal(t, KeyCC, redefinition.Key)
}

func TestParse_LongKeyLineStopsWithWarning(t *testing.T) {
	input := "CC gcc\n" + strings.Repeat("x", 64) + "\n"

	parser := &Parser{MaxLineLength: 32}
	cfg, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.CC())
	assert.Equal(t, []string{warnScanKey}, cfg.Warnings)
}

func TestParse_ReadErrorKeepsPartialConfig(t *testing.T) {
	reader := io.MultiReader(
		strings.NewReader("CC gcc\nOBJECT_DIR ou"),
		iotest.ErrReader(errors.New("device gone")),
	)

	cfg, err := Parse(reader)
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.CC())
	assert.Equal(t, "obj", cfg.ObjectDir())
	assert.Equal(t, []string{warnScanValue}, cfg.Warnings)
}

func TestParse_TemplateRoundTrip(t *testing.T) {
	cfg, err := Parse(strings.NewReader(Template("my_program")))
	require.NoError(t, err)

	assert.Equal(t, "my_program", cfg.BinaryName())
	assert.Equal(t, "-Wall -Werror -Wextra", cfg.CompilerFlags())
	assert.Equal(t, "gcc", cfg.CC())
	assert.NoError(t, cfg.Validate())
}

func TestNew(t *testing.T) {
	cfg := New(map[Key]string{
		KeyCC:       "cc",
		KeyTraceLog: "off",
		Key("NOPE"): "x",
	})

	assert.Equal(t, "cc", cfg.CC())
	assert.False(t, cfg.Trace())
	assert.Equal(t, "src", cfg.SourceDir())

	_, set := cfg.Lookup(Key("NOPE"))
	assert.False(t, set)
}
