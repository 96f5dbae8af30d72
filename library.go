package datalib

import (
	"fmt"
	"os"
	"path/filepath"
)

// Library resolves semantic keys and filenames against a two-tier on-disk
// parameter library: the active root, falling back to an optional default
// root for items the active root does not override.
//
// A Library is safe for concurrent reads. Export and ExportTable write into
// the active root and must not run concurrently with a read of the same file.
type Library struct {
	root        string
	defaultRoot string
	confirm     ConfirmFunc
}

// New creates a Library with the given active root, which must exist and be
// a directory. Options configure the fallback tier and the overwrite-confirm
// strategy; a default root set via WithDefaultLibrary is validated the same
// way as the active root.
func New(root string, opts ...Option) (*Library, error) {
	lib := &Library{root: filepath.Clean(root)}

	for _, apply := range opts {
		apply(lib)
	}

	err := checkRoot(lib.root)
	if err != nil {
		return nil, err
	}

	if lib.defaultRoot != "" {
		lib.defaultRoot = filepath.Clean(lib.defaultRoot)

		err := checkRoot(lib.defaultRoot)
		if err != nil {
			return nil, err
		}
	}

	return lib, nil
}

func checkRoot(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat library root %q: %w", path, err)
	}

	if !stat.IsDir() {
		return fmt.Errorf("library root %q: %w", path, ErrNotDirectory)
	}

	return nil
}

// Root returns the active library root.
func (l *Library) Root() string {
	return l.root
}

// DefaultRoot returns the fallback library root, or "" when none is configured.
func (l *Library) DefaultRoot() string {
	return l.defaultRoot
}

// tiers returns the roots to search, active tier first. The default tier is
// skipped when unset or equal to the active root.
func (l *Library) tiers() []string {
	if l.defaultRoot == "" || l.defaultRoot == l.root {
		return []string{l.root}
	}

	return []string{l.root, l.defaultRoot}
}
