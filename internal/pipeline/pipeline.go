package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/internal/notes"
	"github.com/grokify/releaseconductor/internal/repohost"
	"github.com/grokify/releaseconductor/internal/resolve"
	"github.com/grokify/releaseconductor/internal/semver"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Step identifies a stage of the release workflow.
type Step string

const (
	StepResolveVersion           Step = "resolve_version"
	StepReconcileExistingRelease Step = "reconcile_existing_release"
	StepReconcileExistingTag     Step = "reconcile_existing_tag"
	StepResolveBranch            Step = "resolve_branch"
	StepFetchCommit              Step = "fetch_commit"
	StepEnsureTag                Step = "ensure_tag"
	StepEnsureRelease            Step = "ensure_release"
	StepExtractNotes             Step = "extract_notes"
	StepFormatNotes              Step = "format_notes"
	StepPublishNotes             Step = "publish_notes"
)

// ErrEmptyNotes indicates the release carried no generated notes to format.
var ErrEmptyNotes = errors.New("release notes are empty")

// StepError wraps a failure with the workflow step it occurred in.
type StepError struct {
	Step Step
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying failure.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Options tune a single run.
type Options struct {
	DryRun     bool
	TagMessage string // annotated tag message; default "Release <tag>"
}

// Pipeline sequences the release workflow: resolve the effective tag,
// reconcile any prior release and tag, cut the new tag and release from
// the resolved branch, then format and publish the release notes. Steps
// run strictly in order; the first failure aborts the run. No step is
// retried.
type Pipeline struct {
	host      repohost.Host
	resolver  *resolve.Resolver
	formatter notes.Formatter
	opts      Options
}

// New creates a pipeline over the given collaborators.
func New(host repohost.Host, resolver *resolve.Resolver, formatter notes.Formatter, opts Options) *Pipeline {
	return &Pipeline{
		host:      host,
		resolver:  resolver,
		formatter: formatter,
		opts:      opts,
	}
}

// Run executes the workflow for a requested tag. In dry-run mode the
// read-only steps execute and every mutation is recorded in the result's
// Planned list instead of being performed.
func (p *Pipeline) Run(ctx context.Context, requestedTag string) (*model.CutResult, error) {
	result := &model.CutResult{
		Timestamp:    time.Now().UTC(),
		DryRun:       p.opts.DryRun,
		RequestedTag: requestedTag,
	}

	requested, err := semver.Parse(requestedTag)
	if err != nil {
		return nil, &StepError{Step: StepResolveVersion, Err: err}
	}
	effective, incremented, err := p.resolver.EffectiveTag(ctx, requested)
	if err != nil {
		return nil, &StepError{Step: StepResolveVersion, Err: err}
	}
	tag := effective.String()
	result.EffectiveTag = tag
	result.Incremented = incremented
	slog.Info("resolved version", "step", StepResolveVersion, "requested", requestedTag, "tag", tag, "incremented", incremented)

	existing, found, err := p.host.GetReleaseByTag(ctx, tag)
	if err != nil {
		return nil, &StepError{Step: StepReconcileExistingRelease, Err: err}
	}

	// The release handle threads through the remaining steps; nothing
	// below re-queries it.
	var current *model.Release
	switch {
	case found && !incremented:
		if p.opts.DryRun {
			result.Planned = append(result.Planned, fmt.Sprintf("delete release %d", existing.ID))
		} else {
			if err := p.host.DeleteRelease(ctx, existing.ID); err != nil {
				return nil, &StepError{Step: StepReconcileExistingRelease, Err: err}
			}
			result.PriorReleaseDeleted = true
			slog.Info("deleted existing release", "step", StepReconcileExistingRelease, "tag", tag, "id", existing.ID)
		}
	case found && incremented:
		current = existing
		slog.Info("keeping existing release for incremented version", "step", StepReconcileExistingRelease, "tag", tag, "id", existing.ID)
	default:
		slog.Info("no existing release", "step", StepReconcileExistingRelease, "tag", tag)
	}

	if !incremented {
		if p.opts.DryRun {
			result.Planned = append(result.Planned, "delete tag ref "+tag)
		} else if err := p.host.DeleteTagRef(ctx, tag); err != nil {
			slog.Warn("tolerated tag deletion failure", "step", StepReconcileExistingTag, "tag", tag, "error", err)
		} else {
			result.PriorTagDeleted = true
			slog.Info("removed existing tag ref", "step", StepReconcileExistingTag, "tag", tag)
		}
	} else {
		slog.Info("skipping tag deletion for incremented version", "step", StepReconcileExistingTag, "tag", tag)
	}

	branch, err := p.resolver.ReleaseBranch(ctx, effective)
	if err != nil {
		return nil, &StepError{Step: StepResolveBranch, Err: err}
	}
	result.Branch = branch
	slog.Info("resolved release branch", "step", StepResolveBranch, "tag", tag, "branch", branch)

	commit, err := p.host.LatestCommit(ctx, branch)
	if err != nil {
		return nil, &StepError{Step: StepFetchCommit, Err: err}
	}
	result.CommitSHA = commit
	slog.Info("fetched branch tip", "step", StepFetchCommit, "branch", branch, "commit", commit)

	tagMessage := p.opts.TagMessage
	if tagMessage == "" {
		tagMessage = "Release " + tag
	}

	if current == nil || !incremented {
		if p.opts.DryRun {
			result.Planned = append(result.Planned, fmt.Sprintf("create annotated tag %s at %s", tag, commit))
		} else {
			objectSHA, err := p.host.CreateTagObject(ctx, tag, tagMessage, commit)
			if err != nil {
				return nil, &StepError{Step: StepEnsureTag, Err: err}
			}
			if err := p.host.CreateTagRef(ctx, tag, objectSHA); err != nil {
				return nil, &StepError{Step: StepEnsureTag, Err: err}
			}
			result.TagCreated = true
			slog.Info("created tag", "step", StepEnsureTag, "tag", tag, "object", objectSHA)
		}
	} else {
		slog.Info("reusing existing tag for incremented version", "step", StepEnsureTag, "tag", tag)
	}

	if current == nil {
		if p.opts.DryRun {
			result.Planned = append(result.Planned, fmt.Sprintf("create prerelease %s targeting %s", tag, branch))
		} else {
			created, err := p.host.CreateRelease(ctx, tag, branch)
			if err != nil {
				return nil, &StepError{Step: StepEnsureRelease, Err: err}
			}
			current = created
			slog.Info("created release", "step", StepEnsureRelease, "tag", tag, "id", created.ID)
		}
	} else {
		result.ReleaseReused = true
		slog.Info("reusing existing release", "step", StepEnsureRelease, "tag", tag, "id", current.ID)
	}

	if current != nil {
		result.ReleaseID = current.ID
		result.ReleaseURL = current.HTMLURL
	}

	if p.opts.DryRun {
		result.Planned = append(result.Planned, "format and publish release notes")
		return result, nil
	}

	if strings.TrimSpace(current.Body) == "" {
		return nil, &StepError{Step: StepExtractNotes, Err: ErrEmptyNotes}
	}
	slog.Info("extracted generated notes", "step", StepExtractNotes, "tag", tag, "bytes", len(current.Body))

	formatted, err := p.formatter.FormatReleaseNotes(ctx, current.Body)
	if err != nil {
		return nil, &StepError{Step: StepFormatNotes, Err: err}
	}
	result.Notes = formatted
	slog.Info("formatted notes", "step", StepFormatNotes, "tag", tag, "bytes", len(formatted))

	if err := p.host.UpdateReleaseNotes(ctx, current.ID, formatted); err != nil {
		return nil, &StepError{Step: StepPublishNotes, Err: err}
	}
	result.NotesPublished = true
	slog.Info("published formatted notes", "step", StepPublishNotes, "tag", tag, "id", current.ID)

	return result, nil
}
