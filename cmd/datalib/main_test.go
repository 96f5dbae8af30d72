package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun_ResolvesConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vessels/example_wtiv.yaml", "max_waveheight: 2.5\n")

	configPath := writeFile(t, t.TempDir(), "project.yaml", "wtiv: example_wtiv\nduration: 30\n")

	var out bytes.Buffer

	err := run(&out, []string{"-library", root, configPath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "max_waveheight: 2.5")
	assert.Contains(t, out.String(), "duration: 30")
}

func TestRun_DefaultLibraryFallback(t *testing.T) {
	root := t.TempDir()
	fallback := t.TempDir()
	writeFile(t, fallback, "vessels/example_wtiv.yaml", "max_waveheight: 2.5\n")

	configPath := writeFile(t, t.TempDir(), "project.yaml", "wtiv: example_wtiv\n")

	var out bytes.Buffer

	err := run(&out, []string{"-library", root, "-default-library", fallback, configPath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "max_waveheight: 2.5")
}

func TestRun_ExtraKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vessels/example_wtiv.yaml", "max_waveheight: 2.5\n")

	configPath := writeFile(t, t.TempDir(), "project.yaml",
		"install_config:\n  wtiv: example_wtiv\n")

	var out bytes.Buffer

	err := run(&out, []string{"-library", root, "-extra-keys", "config", configPath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "max_waveheight: 2.5")
}

func TestRun_MissingLibraryFlag(t *testing.T) {
	var out bytes.Buffer

	err := run(&out, []string{"project.yaml"})

	require.ErrorIs(t, err, errLibraryRequired)
}

func TestRun_MissingConfigArgument(t *testing.T) {
	var out bytes.Buffer

	err := run(&out, []string{"-library", t.TempDir()})

	require.ErrorIs(t, err, errConfigRequired)
}

func TestRun_ConfigNotAMapping(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "project.yaml", "- just\n- a\n- list\n")

	var out bytes.Buffer

	err := run(&out, []string{"-library", t.TempDir(), configPath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a mapping")
}

func TestRun_UnresolvableReferenceKeepsString(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "project.yaml", "wtiv: missing_wtiv\n")

	var out bytes.Buffer

	err := run(&out, []string{"-library", t.TempDir(), configPath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "wtiv: missing_wtiv")
}

func TestSplitKeys(t *testing.T) {
	assert.Nil(t, splitKeys(""))
	assert.Equal(t, []string{"config"}, splitKeys("config"))
	assert.Equal(t, []string{"config", "design"}, splitKeys("config, design"))
	assert.Equal(t, []string{"config"}, splitKeys("config,,"))
}
