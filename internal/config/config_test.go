package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/tigerrt/internal/model"
	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// isolateHome points HOME at an empty directory so a developer's own
// ~/.tigerrt/config.yaml cannot leak into the test.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// writeFile creates a file with the given content inside dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_Defaults verifies the built-in settings when nothing overrides them.
func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, primitive.DefaultOutputBufferSize, cfg.OutputBufferSize)
	assert.False(t, cfg.DiscardBufferedInput)
	assert.True(t, cfg.FlushOnExit)
	assert.Empty(t, cfg.Source)
}

// TestLoad_ExplicitFile verifies values from a YAML file given by path.
func TestLoad_ExplicitFile(t *testing.T) {
	isolateHome(t)
	path := writeFile(t, t.TempDir(), "tigerrt.yaml",
		"output_buffer_size: 64\ndiscard_buffered_input: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.OutputBufferSize)
	assert.True(t, cfg.DiscardBufferedInput)
	assert.True(t, cfg.FlushOnExit, "unset keys keep their defaults")
	assert.Equal(t, path, cfg.Source)
}

// TestLoad_HomeFile verifies discovery of $HOME/.tigerrt/config.yaml.
func TestLoad_HomeFile(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, home, filepath.Join(".tigerrt", "config.yaml"), "flush_on_exit: false\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.FlushOnExit)
	assert.True(t, strings.HasSuffix(cfg.Source, "config.yaml"))
}

// TestLoad_EnvOverride verifies that TIGERRT_* variables win over the file.
func TestLoad_EnvOverride(t *testing.T) {
	isolateHome(t)
	path := writeFile(t, t.TempDir(), "tigerrt.yaml", "output_buffer_size: 64\n")
	t.Setenv("TIGERRT_OUTPUT_BUFFER_SIZE", "16")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.OutputBufferSize)
}

// TestLoad_Errors covers a missing explicit file and invalid values.
func TestLoad_Errors(t *testing.T) {
	isolateHome(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "zero.yaml", "output_buffer_size: 0\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_buffer_size must be positive")
}

// TestOptions verifies the settings reach the runtime.
func TestOptions(t *testing.T) {
	cfg := Default()

	var out strings.Builder
	rt := primitive.New(strings.NewReader("ab"), &out, cfg.Options()...)
	assert.Equal(t, "a", rt.GetChar().String())
	assert.Equal(t, "b", rt.GetChar().String(), "input reset is off by default")

	cfg.DiscardBufferedInput = true
	rt = primitive.New(strings.NewReader("ab"), &out, cfg.Options()...)
	assert.Equal(t, "a", rt.GetChar().String())
	assert.Equal(t, "", rt.GetChar().String(), "input reset drops the buffered 'b'")

	rt.PrintString(model.NewTextBuffer("ok"))
	rt.Flush()
	assert.Equal(t, "ok", out.String())
}
