package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// MarkdownFormatter formats results as Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new Markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// FormatCutResult formats a cut result as Markdown.
func (f *MarkdownFormatter) FormatCutResult(result *model.CutResult) (string, error) {
	var sb strings.Builder

	if result.DryRun {
		sb.WriteString("# Release Cut Dry Run Results\n\n")
	} else {
		sb.WriteString("# Release Cut Results\n\n")
	}

	sb.WriteString(fmt.Sprintf("**Time:** %s\n\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Repository:** %s\n\n", result.Repo.FullName()))
	sb.WriteString(fmt.Sprintf("**Requested Tag:** %s\n\n", result.RequestedTag))

	if result.Incremented {
		sb.WriteString(fmt.Sprintf("**Effective Tag:** %s *(incremented)*\n\n", result.EffectiveTag))
	} else {
		sb.WriteString(fmt.Sprintf("**Effective Tag:** %s\n\n", result.EffectiveTag))
	}
	sb.WriteString(fmt.Sprintf("**Release Branch:** %s\n\n", result.Branch))

	var actions []string
	if result.PriorReleaseDeleted {
		actions = append(actions, fmt.Sprintf("✅ deleted prior release for %s", result.EffectiveTag))
	}
	if result.PriorTagDeleted {
		actions = append(actions, fmt.Sprintf("✅ removed prior tag ref %s", result.EffectiveTag))
	}
	if result.TagCreated {
		actions = append(actions, fmt.Sprintf("✅ created tag %s at `%s`", result.EffectiveTag, shortSHA(result.CommitSHA)))
	}
	if result.ReleaseReused {
		actions = append(actions, fmt.Sprintf("⏭️ reused release %d", result.ReleaseID))
	} else if !result.DryRun {
		actions = append(actions, fmt.Sprintf("✅ created prerelease %d targeting %s", result.ReleaseID, result.Branch))
	}
	if result.NotesPublished {
		actions = append(actions, "✅ published formatted release notes")
	}

	if len(actions) > 0 {
		sb.WriteString("## Actions\n\n")
		for _, a := range actions {
			sb.WriteString(fmt.Sprintf("- %s\n", a))
		}
		sb.WriteString("\n")
	}

	if len(result.Planned) > 0 {
		sb.WriteString("## Planned\n\n")
		for _, action := range result.Planned {
			sb.WriteString(fmt.Sprintf("- %s\n", action))
		}
		sb.WriteString("\n")
	}

	if result.ReleaseURL != "" {
		sb.WriteString(fmt.Sprintf("**Release:** [%s](%s)\n\n", result.EffectiveTag, result.ReleaseURL))
	}

	if result.Notes != "" {
		sb.WriteString("## Release Notes\n\n")
		sb.WriteString(result.Notes)
		if !strings.HasSuffix(result.Notes, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
