package utils

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// DirExists reports whether path exists and is a directory.
// An error is returned only for stat failures other than not-found.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// ListFiles walks dir and returns the absolute paths of all regular files,
// sorted lexicographically. Hidden entries (dot-prefixed files and
// directories) are excluded. Returns os.ErrNotExist when dir does not exist.
func ListFiles(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == abs {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CopyTree recursively copies all files under src into dst, creating dst and
// any intermediate directories. Hidden entries are skipped, matching
// ListFiles. It returns the sorted absolute paths of the copied destination
// files.
func CopyTree(src, dst string) ([]string, error) {
	srcFiles, err := ListFiles(src)
	if err != nil {
		return nil, err
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, file := range srcFiles {
		rel, err := filepath.Rel(absSrc, file)
		if err != nil {
			return nil, err
		}
		target := filepath.Join(absDst, rel)
		if err := copyFile(file, target); err != nil {
			return nil, err
		}
		copied = append(copied, target)
	}

	sort.Strings(copied)
	return copied, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
