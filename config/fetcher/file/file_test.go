package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte(`
name: test-app
version: "1.0"
`)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, content, 0o600)
	require.NoError(t, err)

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, configPath, fetcher.Path())
}

func TestFetcher_Fetch_MemFs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/app/config.yml", []byte("motd: null\n"), 0o600))

	fetcher, err := NewFetcher("/etc/app/../app/config.yml", WithFs(fs))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, "motd: null\n", string(data))
	assert.Equal(t, "/etc/app/config.yml", fetcher.Path())
}

func TestFetcher_Fetch_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher("/nonexistent/path/config.yaml", WithFs(afero.NewMemMapFs()))()

	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "stat file")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestFetcher_Fetch_EmptyFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	err := os.WriteFile(configPath, []byte{}, 0o600)
	require.NoError(t, err)

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFetcher_Fetch_ReturnsCopy(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.yml", []byte("a: 1\n"), 0o600))

	fetcher, err := NewFetcher("config.yml", WithFs(fs))()
	require.NoError(t, err)

	first, err := fetcher.Fetch()
	require.NoError(t, err)

	first[0] = 'x'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(second))
}

func TestFetcher_PathIsDirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	fetcher, err := NewFetcher(tmpDir)()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestWriter_Write_CreatesFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	writer, err := NewWriter("/data/nested/config.yml", WithFs(fs))()
	require.NoError(t, err)

	require.NoError(t, writer.Write([]byte("motd: null\n")))

	data, err := afero.ReadFile(fs, "/data/nested/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "motd: null\n", string(data))

	entries, err := afero.ReadDir(fs, "/data/nested")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriter_Write_ReplacesFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	require.NoError(t, os.WriteFile(configPath, []byte("old: true\n"), 0o600))

	writer, err := NewWriter(configPath, WithPerm(0o600))()
	require.NoError(t, err)

	require.NoError(t, writer.Write([]byte("new: true\n")))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "new: true\n", string(data))

	stat, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	assert.Equal(t, configPath, writer.Path())
}

func TestWriter_PathIsDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data", 0o755))

	writer, err := NewWriter("/data", WithFs(fs))()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, writer)
}

func TestWriter_Write_ReadOnlyFs(t *testing.T) {
	t.Parallel()

	writer, err := NewWriter("/data/config.yml", WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))()
	require.NoError(t, err)

	err = writer.Write([]byte("a: 1\n"))

	require.Error(t, err)
}
