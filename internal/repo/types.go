package repo

// Platform represents a git hosting platform
type Platform string

const (
	PlatformGitHub      Platform = "github"
	PlatformGitLab      Platform = "gitlab"
	PlatformBitbucket   Platform = "bitbucket"
	PlatformGitea       Platform = "gitea"
	PlatformCodeberg    Platform = "codeberg"
	PlatformForgejo     Platform = "forgejo"
	PlatformAzure       Platform = "azure"
	PlatformUnsupported Platform = "unsupported"
)

// DefaultRef is the ref assumed when neither the identifier nor the caller
// names a branch.
const DefaultRef = "main"

// DefaultHostname is assumed for short-form identifiers like "owner/repo".
const DefaultHostname = "github.com"

// Descriptor is the canonical record produced from a repository identifier.
// Owner and Repo are always non-empty; a parse that cannot produce both fails
// rather than returning a partial record.
type Descriptor struct {
	Owner    string
	Repo     string
	Hostname string
	Ref      string
	Subpath  string // relative filter path, empty if none
}

// branchMarkers are the path segments hosting platforms place between the
// repository and the ref in browse URLs: GitHub/GitLab/Gitea/Codeberg/Forgejo
// use tree/blob/raw, Bitbucket uses src/browse.
var branchMarkers = map[string]bool{
	"tree":   true,
	"blob":   true,
	"raw":    true,
	"src":    true,
	"browse": true,
}
