package repohost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/grokify/releaseconductor/pkg/model"
)

// GitHubHost implements Host for a single GitHub repository.
type GitHubHost struct {
	client *github.Client
	repo   model.RepoRef
}

// NewGitHubHost creates a GitHub-backed host from the given configuration.
func NewGitHubHost(cfg Config) (*GitHubHost, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	if cfg.Repo.Owner == "" || cfg.Repo.Name == "" {
		return nil, fmt.Errorf("repository owner and name are required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &GitHubHost{client: client, repo: cfg.Repo}, nil
}

// Repo returns the repository this host operates on.
func (h *GitHubHost) Repo() model.RepoRef {
	return h.repo
}

// GetReleaseByTag returns the release for a tag, if one exists.
func (h *GitHubHost) GetReleaseByTag(ctx context.Context, tag string) (*model.Release, bool, error) {
	rel, resp, err := h.client.Repositories.GetReleaseByTag(ctx, h.repo.Owner, h.repo.Name, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to query release for tag %s: %w", tag, err)
	}
	return h.releaseFromGitHub(rel), true, nil
}

// DeleteRelease removes the release with the given id.
func (h *GitHubHost) DeleteRelease(ctx context.Context, id int64) error {
	if _, err := h.client.Repositories.DeleteRelease(ctx, h.repo.Owner, h.repo.Name, id); err != nil {
		return fmt.Errorf("failed to delete release %d: %w", id, err)
	}
	return nil
}

// DeleteTagRef removes the tag reference. Deleting a tag that is already
// absent counts as success.
func (h *GitHubHost) DeleteTagRef(ctx context.Context, tag string) error {
	resp, err := h.client.Git.DeleteRef(ctx, h.repo.Owner, h.repo.Name, "tags/"+tag)
	if err == nil {
		return nil
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil
		case http.StatusUnprocessableEntity:
			// The refs API reports a missing ref as 422, not 404.
			var ghErr *github.ErrorResponse
			if errors.As(err, &ghErr) && strings.Contains(ghErr.Message, "does not exist") {
				return nil
			}
		}
	}

	return fmt.Errorf("failed to delete tag ref %s: %w", tag, err)
}

// LatestCommit returns the SHA at the tip of a branch.
func (h *GitHubHost) LatestCommit(ctx context.Context, branch string) (string, error) {
	ref, _, err := h.client.Git.GetRef(ctx, h.repo.Owner, h.repo.Name, "heads/"+branch)
	if err != nil {
		return "", fmt.Errorf("failed to get latest commit on branch %s: %w", branch, err)
	}
	return ref.GetObject().GetSHA(), nil
}

// CreateTagObject creates an annotated tag object for a commit.
func (h *GitHubHost) CreateTagObject(ctx context.Context, tag, message, commitSHA string) (string, error) {
	obj := &github.Tag{
		Tag:     github.String(tag),
		Message: github.String(message),
		Object: &github.GitObject{
			SHA:  github.String(commitSHA),
			Type: github.String("commit"),
		},
	}

	created, _, err := h.client.Git.CreateTag(ctx, h.repo.Owner, h.repo.Name, obj)
	if err != nil {
		return "", fmt.Errorf("failed to create tag object %s: %w", tag, err)
	}
	return created.GetSHA(), nil
}

// CreateTagRef creates the tag reference pointing at a tag object.
func (h *GitHubHost) CreateTagRef(ctx context.Context, tag, objectSHA string) error {
	ref := &github.Reference{
		Ref:    github.String("refs/tags/" + tag),
		Object: &github.GitObject{SHA: github.String(objectSHA)},
	}

	if _, _, err := h.client.Git.CreateRef(ctx, h.repo.Owner, h.repo.Name, ref); err != nil {
		return fmt.Errorf("failed to create tag ref %s: %w", tag, err)
	}
	return nil
}

// CreateRelease creates a prerelease for the tag targeting a branch, with
// host-generated release notes.
func (h *GitHubHost) CreateRelease(ctx context.Context, tag, targetBranch string) (*model.Release, error) {
	rel := &github.RepositoryRelease{
		TagName:              github.String(tag),
		TargetCommitish:      github.String(targetBranch),
		Name:                 github.String(tag),
		Draft:                github.Bool(false),
		Prerelease:           github.Bool(true),
		GenerateReleaseNotes: github.Bool(true),
	}

	created, _, err := h.client.Repositories.CreateRelease(ctx, h.repo.Owner, h.repo.Name, rel)
	if err != nil {
		return nil, fmt.Errorf("failed to create release for tag %s: %w", tag, err)
	}
	return h.releaseFromGitHub(created), nil
}

// UpdateReleaseNotes replaces the body of the release with the given id.
func (h *GitHubHost) UpdateReleaseNotes(ctx context.Context, id int64, body string) error {
	rel := &github.RepositoryRelease{Body: github.String(body)}
	if _, _, err := h.client.Repositories.EditRelease(ctx, h.repo.Owner, h.repo.Name, id, rel); err != nil {
		return fmt.Errorf("failed to update release %d: %w", id, err)
	}
	return nil
}

// BranchExists reports whether a branch exists on the remote.
func (h *GitHubHost) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, resp, err := h.client.Git.GetRef(ctx, h.repo.Owner, h.repo.Name, "heads/"+branch)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to query branch %s: %w", branch, err)
	}
	return true, nil
}

func (h *GitHubHost) releaseFromGitHub(rel *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:              rel.GetID(),
		TagName:         rel.GetTagName(),
		Name:            rel.GetName(),
		Body:            rel.GetBody(),
		Draft:           rel.GetDraft(),
		Prerelease:      rel.GetPrerelease(),
		TargetCommitish: rel.GetTargetCommitish(),
		CreatedAt:       rel.GetCreatedAt().Time,
		PublishedAt:     rel.GetPublishedAt().Time,
		HTMLURL:         rel.GetHTMLURL(),
		Repo:            h.repo,
	}
}
