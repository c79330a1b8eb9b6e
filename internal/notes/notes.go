package notes

import "context"

// Formatter transforms host-generated release notes into their published form.
type Formatter interface {
	// FormatReleaseNotes formats raw release notes text. It never falls
	// back to returning the input on failure.
	FormatReleaseNotes(ctx context.Context, raw string) (string, error)
}
