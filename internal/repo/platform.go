package repo

import (
	"fmt"
	"strings"
)

// platformKeywords maps hostname substrings to platforms, checked in order so
// the most specific match wins (dev.azure.com before the generic keywords, and
// codeberg/forgejo before gitea covers self-hosted forks that embed both
// names).
var platformKeywords = []struct {
	keyword  string
	platform Platform
}{
	{"dev.azure.com", PlatformAzure},
	{"visualstudio.com", PlatformAzure},
	{"codeberg", PlatformCodeberg},
	{"forgejo", PlatformForgejo},
	{"gitea", PlatformGitea},
	{"github", PlatformGitHub},
	{"gitlab", PlatformGitLab},
	{"bitbucket", PlatformBitbucket},
}

// DetectPlatform matches a hostname against the known hosting platforms.
func DetectPlatform(hostname string) Platform {
	lower := strings.ToLower(hostname)
	for _, entry := range platformKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.platform
		}
	}
	return PlatformUnsupported
}

// TarballURL resolves a repository identifier into the platform's snapshot
// tarball URL for the given ref. When ref is empty the descriptor's ref is
// used. The second return value is false when the identifier cannot be parsed
// or the platform has no tarball endpoint (Azure DevOps, unrecognized hosts);
// this function never returns an error.
func TarballURL(input, ref string) (string, bool) {
	desc, err := Parse(input, ref)
	if err != nil {
		return "", false
	}

	platform := DetectPlatform(desc.Hostname)

	switch platform {
	case PlatformUnsupported:
		return "", false
	case PlatformAzure:
		// Recognized, but Azure DevOps exposes no tarball endpoint.
		return "", false
	case PlatformGitLab:
		return fmt.Sprintf("https://%s/%s/%s/-/archive/%s/%s-%s.tar.gz",
			desc.Hostname, desc.Owner, desc.Repo, desc.Ref, desc.Repo, desc.Ref), true
	case PlatformBitbucket:
		return fmt.Sprintf("https://%s/%s/%s/get/%s.tar.gz",
			desc.Hostname, desc.Owner, desc.Repo, desc.Ref), true
	default:
		// github, gitea, codeberg and forgejo share the archive layout.
		return fmt.Sprintf("https://%s/%s/%s/archive/%s.tar.gz",
			desc.Hostname, desc.Owner, desc.Repo, desc.Ref), true
	}
}
