package repohost

import (
	"context"

	"github.com/grokify/releaseconductor/pkg/model"
)

// Host defines the release and tag operations the cut workflow requires,
// scoped to the single repository configured at construction.
type Host interface {
	// GetReleaseByTag returns the release for a tag. The second return
	// reports whether the release exists; absence is not an error.
	GetReleaseByTag(ctx context.Context, tag string) (*model.Release, bool, error)

	// DeleteRelease removes the release with the given id.
	DeleteRelease(ctx context.Context, id int64) error

	// DeleteTagRef removes the tag reference. A tag that is already
	// absent counts as success.
	DeleteTagRef(ctx context.Context, tag string) error

	// LatestCommit returns the SHA at the tip of a branch.
	LatestCommit(ctx context.Context, branch string) (string, error)

	// CreateTagObject creates an annotated tag object for a commit and
	// returns the new object's SHA.
	CreateTagObject(ctx context.Context, tag, message, commitSHA string) (string, error)

	// CreateTagRef creates the tag reference pointing at a tag object.
	CreateTagRef(ctx context.Context, tag, objectSHA string) error

	// CreateRelease creates a prerelease for the tag targeting a branch,
	// with host-generated release notes.
	CreateRelease(ctx context.Context, tag, targetBranch string) (*model.Release, error)

	// UpdateReleaseNotes replaces the body of the release with the given id.
	UpdateReleaseNotes(ctx context.Context, id int64, body string) error

	// BranchExists reports whether a branch exists. Absence is not an
	// error; only transport or server failures are.
	BranchExists(ctx context.Context, branch string) (bool, error)
}

// Config configures access to the repository releases are cut from.
type Config struct {
	Token   string
	Repo    model.RepoRef
	BaseURL string // API endpoint override; empty means public GitHub
}
