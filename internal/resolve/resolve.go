package resolve

import (
	"context"
	"fmt"

	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Source is the remote state the resolver consults. It is satisfied by
// repohost.Host.
type Source interface {
	// GetReleaseByTag returns the release for a tag, if one exists.
	GetReleaseByTag(ctx context.Context, tag string) (*model.Release, bool, error)

	// BranchExists reports whether a branch exists.
	BranchExists(ctx context.Context, branch string) (bool, error)
}

// ConventionBranch returns the long-lived release branch for the tag's
// minor series, e.g. "release/v1.2.x" for v1.2.3.
func ConventionBranch(tag semver.Tag) string {
	return fmt.Sprintf("release/v%s.x", tag.MinorSeries())
}

// FallbackBranch returns the per-tag release branch used when no minor
// series branch exists.
func FallbackBranch(tag semver.Tag) string {
	return "release/" + tag.String()
}

// Resolver decides the effective tag and release branch for a cut.
type Resolver struct {
	source Source
}

// NewResolver creates a resolver backed by the given remote state source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// EffectiveTag decides the tag a cut operates on. When the requested tag
// already carries a prerelease and its minor-series branch exists, the
// patch component is bumped by one, suffix preserved; otherwise the
// requested tag is used as-is. The second return reports whether a bump
// happened.
func (r *Resolver) EffectiveTag(ctx context.Context, requested semver.Tag) (semver.Tag, bool, error) {
	rel, found, err := r.source.GetReleaseByTag(ctx, requested.String())
	if err != nil {
		return semver.Tag{}, false, err
	}
	if !found || !rel.Prerelease {
		return requested, false, nil
	}

	exists, err := r.source.BranchExists(ctx, ConventionBranch(requested))
	if err != nil {
		return semver.Tag{}, false, err
	}
	if !exists {
		return requested, false, nil
	}

	bumped, err := requested.BumpPatch()
	if err != nil {
		return semver.Tag{}, false, err
	}
	return bumped, true, nil
}

// ReleaseBranch picks the branch a tag is cut from: the minor-series
// branch when it exists, the per-tag branch otherwise.
func (r *Resolver) ReleaseBranch(ctx context.Context, tag semver.Tag) (string, error) {
	branch := ConventionBranch(tag)
	exists, err := r.source.BranchExists(ctx, branch)
	if err != nil {
		return "", err
	}
	if exists {
		return branch, nil
	}
	return FallbackBranch(tag), nil
}
