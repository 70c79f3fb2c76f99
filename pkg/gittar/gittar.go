// Package gittar fetches a remote git repository's branch snapshot as a
// tarball, extracts it into a local cache, and optionally materializes a
// filtered copy into a separate output directory. No git client is required.
package gittar

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hulla/gittar/internal/archive"
	"github.com/hulla/gittar/internal/fetcher"
	"github.com/hulla/gittar/internal/repo"
	"github.com/hulla/gittar/internal/utils"
)

// refCandidates is the ordered branch fallback used when the caller does not
// pin a branch.
var refCandidates = []string{"main", "master"}

// Fetcher orchestrates cache lookup, download, extraction and copy-to-output.
type Fetcher struct {
	client *fetcher.Client
	logger *utils.Logger
}

// FetcherOptions contains options for creating a Fetcher
type FetcherOptions struct {
	HTTPClient *http.Client
	Logger     *utils.Logger
	Retries    int  // per-request retry budget for transient failures; 0 disables
	Progress   bool // render a download progress bar
}

// New creates a Fetcher
func New(opts FetcherOptions) *Fetcher {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Fetcher{
		client: fetcher.New(fetcher.Options{
			HTTPClient: opts.HTTPClient,
			Logger:     logger,
			MaxRetries: opts.Retries,
			Progress:   opts.Progress,
		}),
		logger: logger,
	}
}

// Fetch is the entry point. It resolves the identifier, trusts the cache
// unless Update is set, downloads and extracts the snapshot otherwise, and
// returns the (optionally subpath-filtered) file listing. Failures are
// reported as *URLError or *FilesystemError.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	return New(FetcherOptions{}).Fetch(ctx, opts)
}

// FetchURL fetches a bare identifier with default options.
func FetchURL(ctx context.Context, url string) (*Result, error) {
	return Fetch(ctx, Options{URL: url})
}

// Fetch implements the resolve-probe-download-extract-materialize sequence
// for a single invocation.
func (f *Fetcher) Fetch(ctx context.Context, opts Options) (*Result, error) {
	desc, err := repo.Parse(opts.URL, opts.Branch)
	if err != nil {
		return nil, NewURLError(opts.URL, 0, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err))
	}

	subpath := desc.Subpath
	if opts.Subpath != "" {
		subpath = repo.NormalizeSubpath(opts.Subpath)
	}

	cacheDir := ResolveCacheDir(opts, desc.Owner, desc.Repo)
	outDir := ResolveOutDir(opts, cacheDir)

	log := f.logger.WithRepo(desc.Owner, desc.Repo)

	if !opts.Update {
		hit, err := f.probeCache(cacheDir, subpath)
		if err != nil {
			return nil, NewFilesystemError(cacheDir, err)
		}
		if hit {
			log.Debug().Str("cache_dir", cacheDir).Msg("Cache hit")
			return f.materialize(cacheDir, outDir, subpath, true)
		}
	}

	staged, err := f.download(ctx, opts.URL, opts.Branch)
	if err != nil {
		return nil, err
	}
	defer os.Remove(staged)

	log.Debug().Str("cache_dir", cacheDir).Msg("Extracting snapshot")
	if _, err := archive.ExtractFile(staged, cacheDir); err != nil {
		return nil, NewFilesystemError(cacheDir, err)
	}

	return f.materialize(cacheDir, outDir, subpath, false)
}

// probeCache reports whether the cache directory, and the requested subpath
// inside it, already exist. A cache directory missing the subpath is a full
// miss.
func (f *Fetcher) probeCache(cacheDir, subpath string) (bool, error) {
	exists, err := utils.DirExists(cacheDir)
	if err != nil || !exists {
		return false, err
	}

	if subpath != "" {
		if _, err := os.Stat(filepath.Join(cacheDir, subpath)); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}
	}

	return true, nil
}

// download walks the candidate ref list in order: the pinned branch alone, or
// main then master. A 404 advances to the next candidate; a 404 on the last
// candidate, any other non-2xx status, and any transport error are terminal.
func (f *Fetcher) download(ctx context.Context, identifier, branch string) (string, error) {
	candidates := refCandidates
	if branch != "" {
		candidates = []string{branch}
	}

	// A ref embedded in the identifier overrides every candidate, collapsing
	// them to a single attempt.
	urls := make([]string, 0, len(candidates))
	for _, ref := range candidates {
		url, ok := repo.TarballURL(identifier, ref)
		if !ok {
			return "", NewURLError(identifier, 0, ErrUnsupportedPlatform)
		}
		if len(urls) > 0 && urls[len(urls)-1] == url {
			continue
		}
		urls = append(urls, url)
	}

	for i, url := range urls {
		dl, err := f.client.Get(ctx, url)
		if err != nil {
			return "", NewURLError(url, 0, err)
		}

		if dl.StatusCode >= 200 && dl.StatusCode < 300 {
			f.logger.Debug().Str("url", url).Int64("bytes", dl.Size).Msg("Downloaded snapshot")
			return dl.Path, nil
		}

		if dl.StatusCode == http.StatusNotFound && i < len(urls)-1 {
			f.logger.Debug().Str("url", url).Msg("Ref not found, trying next candidate")
			continue
		}

		return "", NewURLError(url, dl.StatusCode,
			fmt.Errorf("download failed: %s", http.StatusText(dl.StatusCode)))
	}

	// Unreachable: the loop always returns on its last candidate.
	return "", NewURLError(identifier, 0, ErrInvalidIdentifier)
}

// materialize produces the result listing: files under the cache (filtered to
// subpath when set), copied into outDir when it differs from the cache
// directory. Filtering never mutates the cache tree.
func (f *Fetcher) materialize(cacheDir, outDir, subpath string, fromCache bool) (*Result, error) {
	srcDir := cacheDir
	if subpath != "" {
		srcDir = filepath.Join(cacheDir, subpath)
	}

	var files []string
	var err error
	if outDir != cacheDir {
		files, err = utils.CopyTree(srcDir, outDir)
	} else {
		files, err = utils.ListFiles(srcDir)
	}
	if err != nil {
		return nil, NewFilesystemError(srcDir, err)
	}

	return &Result{
		Files:     files,
		CacheDir:  cacheDir,
		OutDir:    outDir,
		Subpath:   subpath,
		FromCache: fromCache,
	}, nil
}
