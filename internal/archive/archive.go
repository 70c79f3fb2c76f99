// Package archive extracts hosting-platform snapshot tarballs.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ExtractTarGz extracts a gzipped tarball into destDir, stripping the single
// top-level directory that platform snapshot archives wrap their contents in.
// Entries that would escape destDir are skipped. Returns the sorted absolute
// paths of the extracted regular files.
func ExtractTarGz(r io.Reader, destDir string) ([]string, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader failed: %w", err)
	}
	defer gzr.Close()

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDest, 0755); err != nil {
		return nil, fmt.Errorf("mkdir failed: %w", err)
	}

	tr := tar.NewReader(gzr)

	var files []string
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tar read failed: %w", err)
		}

		relativePath, ok := stripRoot(header.Name)
		if !ok {
			continue
		}

		targetPath := filepath.Join(absDest, filepath.FromSlash(relativePath))
		if !strings.HasPrefix(filepath.Clean(targetPath), absDest+string(filepath.Separator)) {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return nil, fmt.Errorf("mkdir failed: %w", err)
			}
		case tar.TypeReg:
			if err := writeFile(targetPath, tr, header.Mode); err != nil {
				return nil, err
			}
			files = append(files, targetPath)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ExtractFile extracts the tarball at archivePath into destDir.
func ExtractFile(archivePath, destDir string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ExtractTarGz(f, destDir)
}

// stripRoot drops the leading path component conventionally present in
// platform tarballs ("repo-ref/...").
func stripRoot(name string) (string, bool) {
	parts := strings.SplitN(name, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeFile(targetPath string, r io.Reader, mode int64) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	file, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(mode).Perm())
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	return file.Close()
}
