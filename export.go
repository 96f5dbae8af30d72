package datalib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/datalib/document"
	"github.com/0xalexb/datalib/tabular"
)

// ConfirmFunc decides whether an export may overwrite path. It is consulted
// only when the target file already exists.
type ConfirmFunc func(path string) bool

// Export writes data as a structured document under the key's subdirectory
// in the active root. If the target exists, the configured confirm strategy
// decides whether to overwrite; declining (or having no strategy) cancels
// the export with ErrExportCancelled.
//
// The target subdirectory must already exist; exports do not create it.
func (l *Library) Export(key, filename string, data any) error {
	b, err := document.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", filename, err)
	}

	return l.write(key, filename+".yaml", b)
}

// ExportTable writes rows verbatim as a comma-delimited file under the key's
// subdirectory in the active root, with the same overwrite protection as
// Export.
func (l *Library) ExportTable(key, filename string, rows [][]string) error {
	b, err := tabular.Encode(rows)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", filename, err)
	}

	return l.write(key, filename+".csv", b)
}

func (l *Library) write(key, filename string, data []byte) error {
	dir, err := PathFor(key)
	if err != nil {
		return err
	}

	path := filepath.Join(l.root, filepath.FromSlash(dir), filename)

	if isFile(path) && !l.confirmOverwrite(path) {
		return fmt.Errorf("%q: %w", path, ErrExportCancelled)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("writing file %q: %w", path, err)
	}

	return nil
}

func (l *Library) confirmOverwrite(path string) bool {
	if l.confirm == nil {
		return false
	}

	return l.confirm(path)
}

// NewPromptConfirm returns a ConfirmFunc that asks a y/n question on w and
// reads the answer from r, asking again on invalid input. End of input
// counts as declining.
func NewPromptConfirm(r io.Reader, w io.Writer) ConfirmFunc {
	scanner := bufio.NewScanner(r)

	return func(path string) bool {
		for {
			fmt.Fprintf(w, "%s already exists, overwrite [y/n]? ", path)

			if !scanner.Scan() {
				return false
			}

			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "y":
				return true
			case "n":
				return false
			}

			fmt.Fprintln(w, "Bad input! Must be one of [y/n]")
		}
	}
}
