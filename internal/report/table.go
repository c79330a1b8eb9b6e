package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// TableFormatter formats results as text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// FormatCutResult formats a cut result as a text table.
func (f *TableFormatter) FormatCutResult(result *model.CutResult) (string, error) {
	var sb strings.Builder

	if result.DryRun {
		sb.WriteString("Release Cut Dry Run Results")
	} else {
		sb.WriteString("Release Cut Results")
	}
	sb.WriteString(fmt.Sprintf(" (%s)\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Repository: %s\n", result.Repo.FullName()))

	effective := result.EffectiveTag
	if result.Incremented {
		effective += " (incremented)"
	}
	sb.WriteString(fmt.Sprintf("Requested: %s | Effective: %s | Branch: %s\n",
		result.RequestedTag, effective, result.Branch))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.PriorReleaseDeleted {
		sb.WriteString(fmt.Sprintf("  ✅ deleted prior release for %s\n", result.EffectiveTag))
	}
	if result.PriorTagDeleted {
		sb.WriteString(fmt.Sprintf("  ✅ removed prior tag ref %s\n", result.EffectiveTag))
	}
	if result.TagCreated {
		sb.WriteString(fmt.Sprintf("  ✅ created tag %s at %s\n", result.EffectiveTag, shortSHA(result.CommitSHA)))
	}
	if result.ReleaseReused {
		sb.WriteString(fmt.Sprintf("  ⏭️  reused release %d\n", result.ReleaseID))
	} else if !result.DryRun {
		sb.WriteString(fmt.Sprintf("  ✅ created prerelease %d targeting %s\n", result.ReleaseID, result.Branch))
	}
	if result.NotesPublished {
		sb.WriteString("  ✅ published formatted release notes\n")
	}

	if len(result.Planned) > 0 {
		sb.WriteString("\nPlanned:\n")
		for _, action := range result.Planned {
			sb.WriteString(fmt.Sprintf("  ⏳ %s\n", action))
		}
	}

	if result.ReleaseURL != "" {
		sb.WriteString(fmt.Sprintf("\nRelease: %s\n", result.ReleaseURL))
	}

	if result.Notes != "" {
		sb.WriteString("\nNotes:\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(result.Notes)
		if !strings.HasSuffix(result.Notes, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// shortSHA abbreviates a commit SHA for display.
func shortSHA(sha string) string {
	if len(sha) <= 12 {
		return sha
	}
	return sha[:12]
}
