package gittar

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidIdentifier indicates the repository identifier could not be
	// parsed into owner/repo.
	ErrInvalidIdentifier = errors.New("invalid repository identifier")

	// ErrUnsupportedPlatform indicates the host is unknown or has no tarball
	// endpoint (Azure DevOps).
	ErrUnsupportedPlatform = errors.New("unsupported hosting platform")
)

// URLError reports identifier, platform and download failures: unparseable
// identifiers, unsupported platforms, exhausted ref candidates, non-404 HTTP
// errors and transport-level failures.
type URLError struct {
	URL        string
	StatusCode int // 0 when no HTTP response was involved
	Err        error
}

func (e *URLError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("url error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("url error for %s: %v", e.URL, e.Err)
}

func (e *URLError) Unwrap() error {
	return e.Err
}

// NewURLError creates a new URLError
func NewURLError(url string, statusCode int, err error) *URLError {
	return &URLError{URL: url, StatusCode: statusCode, Err: err}
}

// FilesystemError reports cache probe, copy and extraction failures.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error for %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// NewFilesystemError creates a new FilesystemError
func NewFilesystemError(path string, err error) *FilesystemError {
	return &FilesystemError{Path: path, Err: err}
}
