package gittar

// Options configures a single fetch. Only URL is required. Options are read
// once per call and never mutated.
type Options struct {
	// URL is the repository identifier: "owner/repo", a git@ SSH address, or
	// a full https URL (optionally with an embedded /tree/<ref>/<subpath>).
	URL string

	// Branch pins the ref and disables the main/master fallback.
	Branch string

	// CacheDir overrides the default per-repository cache location.
	CacheDir string

	// OutDir materializes the (possibly filtered) files into a separate
	// directory. Defaults to the cache directory.
	OutDir string

	// Subpath filters the returned/copied files to a relative path inside
	// the repository. Overrides any subpath embedded in URL.
	Subpath string

	// Update bypasses the cache read and always re-downloads.
	Update bool
}

// Result describes a completed fetch. Files are absolute paths, sorted
// lexicographically.
type Result struct {
	Files     []string
	CacheDir  string
	OutDir    string
	Subpath   string
	FromCache bool
}
