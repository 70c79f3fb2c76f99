package utils_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulla/gittar/internal/utils"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tilde slash", input: "~/cache/repos", want: filepath.Join(home, "cache", "repos")},
		{name: "bare tilde", input: "~", want: home},
		{name: "absolute untouched", input: "/tmp/x", want: "/tmp/x"},
		{name: "relative untouched", input: "some/dir", want: "some/dir"},
		{name: "tilde in middle untouched", input: "/tmp/~x", want: "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ExpandPath(tt.input))
		})
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(dir, ".hidden"), "x")
	writeFile(t, filepath.Join(dir, ".git", "config"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0755))

	files, err := utils.ListFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}, files)
	assert.True(t, sort.StringsAreSorted(files))
}

func TestListFiles_NotFound(t *testing.T) {
	_, err := utils.ListFiles(filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(src, "readme.md"), "hello")
	writeFile(t, filepath.Join(src, "src", "index.ts"), "export {}")
	writeFile(t, filepath.Join(src, ".hidden"), "x")

	copied, err := utils.CopyTree(src, dst)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dst, "readme.md"),
		filepath.Join(dst, "src", "index.ts"),
	}, copied)

	content, err := os.ReadFile(filepath.Join(dst, "src", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export {}", string(content))

	// Source stays intact.
	_, err = os.Stat(filepath.Join(src, "readme.md"))
	assert.NoError(t, err)
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := utils.DirExists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = utils.DirExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	file := filepath.Join(dir, "file.txt")
	writeFile(t, file, "x")
	exists, err = utils.DirExists(file)
	require.NoError(t, err)
	assert.False(t, exists)
}
