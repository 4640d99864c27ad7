package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bank2ledger/internal/model"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checking.ledger")
	entries := MapAll([]model.BankTransaction{coffee()}, "Assets:Checking")

	require.NoError(t, WriteFile(path, entries, DefaultFormat()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-05 COFFEE SHOP\n    Assets:Checking  -42.50\n    Expenses:Unknown\n", string(data))
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checking.ledger")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than the new file\n"), 0o644))

	require.NoError(t, WriteFile(path, nil, DefaultFormat()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checking.ledger")
	entries := MapAll([]model.BankTransaction{coffee(), coffee()}, "Assets:Checking")

	require.NoError(t, WriteFile(path, entries, DefaultFormat()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, entries, DefaultFormat()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteFile_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checking.ledger")
	require.NoError(t, WriteFile(path, MapAll([]model.BankTransaction{coffee()}, "Assets:Checking"), DefaultFormat()))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "checking.ledger", files[0].Name())
}

func TestWriteFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.ledger")
	err := WriteFile(path, nil, DefaultFormat())
	require.Error(t, err)

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, path, werr.Path)
	assert.True(t, strings.HasPrefix(err.Error(), "writing "+path))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_NewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checking.ledger")
	require.NoError(t, WriteFile(path, nil, DefaultFormat()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFile_KeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.ledger")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, WriteFile(path, MapAll([]model.BankTransaction{coffee()}, "Assets:Checking"), DefaultFormat()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFile_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "journal.ledger")
	link := filepath.Join(dir, "current.ledger")
	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, WriteFile(link, MapAll([]model.BankTransaction{coffee()}, "Assets:Checking"), DefaultFormat()))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link should still be a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "2023-01-05 COFFEE SHOP\n"))
}
