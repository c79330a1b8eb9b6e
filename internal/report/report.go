package report

import "github.com/grokify/releaseconductor/pkg/model"

// Formatter defines the interface for formatting results.
type Formatter interface {
	// FormatCutResult formats the result of a release cut.
	FormatCutResult(result *model.CutResult) (string, error)
}
