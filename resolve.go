package datalib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xalexb/datalib/document"
	"github.com/0xalexb/datalib/tabular"
)

// Resolve locates filename (without extension) under the subdirectory mapped
// to key, searching the active root and then the default root, and returns
// the decoded document. The file is read fresh on every call.
//
// Returns *UnknownKeyError when key is not in the table, *ItemNotFoundError
// when neither tier holds the file, and *ParseError when the file exists but
// cannot be decoded.
func (l *Library) Resolve(key, filename string) (any, error) {
	return l.resolve(key, filename, FormatDocument)
}

// ResolveTable is Resolve for comma-delimited tables.
func (l *Library) ResolveTable(key, filename string) (*tabular.Table, error) {
	v, err := l.resolve(key, filename, FormatTable)
	if err != nil {
		return nil, err
	}

	table, ok := v.(*tabular.Table)
	if !ok {
		return nil, fmt.Errorf("library item %q: expected a table, got %T", filename, v)
	}

	return table, nil
}

func (l *Library) resolve(key, filename string, format Format) (any, error) {
	dir, err := PathFor(key)
	if err != nil {
		return nil, err
	}

	for _, root := range l.tiers() {
		for _, ext := range format.extensions() {
			path := filepath.Join(root, filepath.FromSlash(dir), filename+"."+ext)
			if isFile(path) {
				return extract(path)
			}
		}
	}

	return nil, &ItemNotFoundError{Dir: dir, Filename: filename + "." + format.extensions()[0]}
}

// extract reads and decodes one library file, dispatching on its extension.
func extract(path string) (any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is assembled from a validated root and the key table
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		v, err := document.Decode(data)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}

		return v, nil
	case ".csv":
		table, err := tabular.Decode(data)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}

		return table, nil
	default:
		return nil, fmt.Errorf("file type %q not supported for extraction", ext)
	}
}

func isFile(path string) bool {
	stat, err := os.Stat(path)

	return err == nil && !stat.IsDir()
}
