package repo

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var sshPattern = regexp.MustCompile(`^git@([^:]+):(.+)$`)

// Parse normalizes a repository identifier into a Descriptor. Accepted shapes,
// first match wins:
//
//  1. SSH-style: git@host:owner/repo[.git]
//  2. Short form: owner/repo (hostname defaults to github.com)
//  3. Full URL: https://host/owner/repo[/tree/<ref>[/<subpath>]]
//
// defaultBranch overrides the built-in "main" default; a ref embedded in the
// URL path wins over both.
func Parse(input, defaultBranch string) (*Descriptor, error) {
	ref := DefaultRef
	if defaultBranch != "" {
		ref = defaultBranch
	}

	switch {
	case strings.HasPrefix(input, "git@"):
		return parseSSH(input, ref)
	case !strings.Contains(input, "://") && !strings.HasPrefix(input, "http") && !strings.Contains(input, "@"):
		return parseShort(input, ref)
	default:
		return parseURL(input, ref)
	}
}

func parseSSH(input, ref string) (*Descriptor, error) {
	matches := sshPattern.FindStringSubmatch(input)
	if matches == nil {
		return nil, fmt.Errorf("invalid ssh identifier: %s", input)
	}

	host := matches[1]
	repoPath := strings.TrimSuffix(matches[2], ".git")

	segments := splitPath(repoPath)
	if len(segments) < 2 {
		return nil, fmt.Errorf("ssh identifier missing owner/repo: %s", input)
	}

	return &Descriptor{
		Owner:    segments[0],
		Repo:     segments[1],
		Hostname: host,
		Ref:      ref,
	}, nil
}

func parseShort(input, ref string) (*Descriptor, error) {
	segments := splitPath(input)
	if len(segments) < 2 {
		return nil, fmt.Errorf("short identifier missing owner/repo: %s", input)
	}

	return &Descriptor{
		Owner:    segments[0],
		Repo:     segments[1],
		Hostname: DefaultHostname,
		Ref:      ref,
	}, nil
}

func parseURL(input, ref string) (*Descriptor, error) {
	u, err := url.Parse(input)
	if err != nil || u.Hostname() == "" {
		// Not an absolute URL; fall back to short-form rules on the raw input.
		return parseShort(input, ref)
	}

	segments := splitPath(u.Path)
	if len(segments) < 2 {
		return nil, fmt.Errorf("url missing owner/repo path: %s", input)
	}

	desc := &Descriptor{
		Owner:    segments[0],
		Repo:     strings.TrimSuffix(segments[1], ".git"),
		Hostname: u.Hostname(),
		Ref:      ref,
	}

	if len(segments) > 2 && branchMarkers[segments[2]] {
		if len(segments) > 3 {
			desc.Ref = segments[3]
		}
		if len(segments) > 4 {
			desc.Subpath = NormalizeSubpath(strings.Join(segments[4:], "/"))
		}
	}

	return desc, nil
}

func splitPath(p string) []string {
	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// NormalizeSubpath cleans a filter path: URL escapes decoded, backslashes
// normalized, surrounding slashes trimmed.
func NormalizeSubpath(p string) string {
	if p == "" {
		return ""
	}

	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}

	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}

	return path.Clean(p)
}
