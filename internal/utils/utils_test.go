package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticLevels(t *testing.T) {
	tests := []struct {
		level    DiagnosticLevel
		expected []string
		errors   bool
	}{
		{DiagnosticSilent, nil, false},
		{DiagnosticError, nil, true},
		{DiagnosticInfo, []string{"[WARN] w", "[INFO] i", "[SUCCESS] s"}, true},
		{DiagnosticDebug, []string{"[WARN] w", "[INFO] i", "[SUCCESS] s", "[VERBOSE] v", "[DEBUG] d"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var out, errOut bytes.Buffer
			d := NewDiagnosticSystemWithWriters(tt.level, &out, &errOut)

			d.Error("e")
			d.Warn("w")
			d.Info("i")
			d.Success("s")
			d.Verbose("v")
			d.Debug("d")

			for _, line := range tt.expected {
				assert.Contains(t, out.String(), line+"\n")
			}
			if tt.expected == nil {
				assert.Empty(t, out.String())
			}
			if tt.errors {
				assert.Equal(t, "[ERROR] e\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestParseDiagnosticLevel(t *testing.T) {
	level, err := ParseDiagnosticLevel("Verbose")
	require.NoError(t, err)
	assert.Equal(t, DiagnosticVerbose, level)

	_, err = ParseDiagnosticLevel("loud")
	assert.Error(t, err)
}

func TestDiagnosticFormatting(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystemWithWriters(DiagnosticInfo, &out, &out)

	d.Header("generate")
	d.Indent()
	d.List("a %d", 1)
	d.Item("create Blog.Partial.cs.")
	d.Unindent()
	d.Unindent()
	d.Summary("Done", map[string]interface{}{"b": 2, "a": 1})

	assert.Equal(t, "modelmeta: generate\n"+
		"  - a 1\n"+
		"  ✓ create Blog.Partial.cs.\n"+
		"\nDone\n   a: 1\n   b: 2\n\n", out.String())
}

func TestFileSinkWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := NewFileSink(dir)

	path, err := sink.WriteFile("Blog.Partial.cs", "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Blog.Partial.cs"), path)

	_, err = sink.WriteFile("Blog.Partial.cs", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileSinkRejectsPaths(t *testing.T) {
	sink := NewFileSink(t.TempDir())

	for _, name := range []string{"", " ", "..", "../escape.cs", "sub/file.cs"} {
		_, err := sink.WriteFile(name, "x")
		assert.Error(t, err, name)
	}

	assert.Equal(t, ".", NewFileSink("").Dir())
}

func TestFormatLineEndings(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\n", FormatLineEndings("a\nb\r\n", LineEndingCRLF))
	assert.Equal(t, "a\nb\n", FormatLineEndings("a\r\nb\n", LineEndingLF))

	ending, err := ParseLineEnding("CRLF")
	require.NoError(t, err)
	assert.Equal(t, LineEndingCRLF, ending)

	ending, err = ParseLineEnding("")
	require.NoError(t, err)
	assert.Equal(t, LineEndingLF, ending)

	_, err = ParseLineEnding("cr")
	assert.Error(t, err)
}
