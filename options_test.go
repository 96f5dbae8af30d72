package datalib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaultLibrary(t *testing.T) {
	t.Parallel()

	fallback := t.TempDir()

	lib, err := New(t.TempDir(), WithDefaultLibrary(fallback))

	require.NoError(t, err)
	assert.Equal(t, fallback, lib.DefaultRoot())
}

func TestWithConfirm(t *testing.T) {
	t.Parallel()

	lib, err := New(t.TempDir(), WithConfirm(func(string) bool { return true }))

	require.NoError(t, err)
	assert.NotNil(t, lib.confirm)
	assert.True(t, lib.confirmOverwrite("anything"))
}

func TestConfirm_DefaultDeclines(t *testing.T) {
	t.Parallel()

	lib, err := New(t.TempDir())

	require.NoError(t, err)
	assert.False(t, lib.confirmOverwrite("anything"))
}
