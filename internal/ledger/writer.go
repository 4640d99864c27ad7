package ledger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cleared-dev/bank2ledger/internal/model"
)

// WriteError reports that the destination journal could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Write renders entries to w, separated by blank lines.
func Write(w io.Writer, entries []model.LedgerEntry, f Format) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing entry %d: %w", i+1, err)
			}
		}
		if _, err := bw.WriteString(MarshalEntry(e, f)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes entries to path, replacing any existing file. The journal
// is staged in a temporary file next to path and renamed into place, so path
// is either fully written or left untouched. An existing file keeps its
// permissions, and a symlink at path is followed so the link itself survives.
func WriteFile(path string, entries []model.LedgerEntry, f Format) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".bank2ledger-*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, entries, f); err != nil {
		tmp.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
