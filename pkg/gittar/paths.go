package gittar

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/hulla/gittar/internal/utils"
)

// ResolveCacheDir decides the on-disk cache directory for a repository. An
// explicit CacheDir wins unconditionally (after ~-expansion); the default is
// {xdg cache home}/hulla/gittar/{owner}/{repo}. The cache location is
// independent of OutDir and Subpath: the cache always holds the full
// repository snapshot regardless of what the caller filters into the output.
func ResolveCacheDir(opts Options, owner, repo string) string {
	if opts.CacheDir != "" {
		return utils.ExpandPath(opts.CacheDir)
	}
	return filepath.Join(xdg.CacheHome, "hulla", "gittar", owner, repo)
}

// ResolveOutDir decides the materialization directory: an explicit OutDir
// (after ~-expansion), else the cache directory itself.
func ResolveOutDir(opts Options, cacheDir string) string {
	if opts.OutDir != "" {
		return utils.ExpandPath(opts.OutDir)
	}
	return cacheDir
}
