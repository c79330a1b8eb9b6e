package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy describes how release note lines are grouped and deep-linked:
// one heading per ticket-id prefix, items in ascending ticket order, each
// item linked into the issue tracker.
type Taxonomy struct {
	TicketPrefixes []string `yaml:"ticketPrefixes"`
	TrackerURL     string   `yaml:"trackerUrl"`
}

// DefaultTaxonomy returns the ticket grouping used when no taxonomy file
// is supplied.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		TicketPrefixes: []string{"PD", "PDE", "PRDY"},
		TrackerURL:     "https://onezelis.atlassian.net/browse",
	}
}

// LoadTaxonomyFromFile loads a taxonomy from a YAML file.
func LoadTaxonomyFromFile(path string) (Taxonomy, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304
	if err != nil {
		return Taxonomy{}, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var tx Taxonomy
	if err := yaml.Unmarshal(data, &tx); err != nil {
		return Taxonomy{}, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	if len(tx.TicketPrefixes) == 0 {
		tx.TicketPrefixes = DefaultTaxonomy().TicketPrefixes
	}
	if tx.TrackerURL == "" {
		tx.TrackerURL = DefaultTaxonomy().TrackerURL
	}

	return tx, nil
}

// BuildPrompt wraps raw release notes in the formatting instructions sent
// to the model.
func (tx Taxonomy) BuildPrompt(raw string) string {
	prefixes := tx.TicketPrefixes
	if len(prefixes) == 0 {
		prefixes = DefaultTaxonomy().TicketPrefixes
	}
	tracker := strings.TrimSuffix(tx.TrackerURL, "/")
	if tracker == "" {
		tracker = DefaultTaxonomy().TrackerURL
	}
	example := prefixes[0] + "-3441"

	var sb strings.Builder
	fmt.Fprintf(&sb, "TEMPLATE: %s/[Ticket ID]\n", tracker)
	fmt.Fprintf(&sb, "EXAMPLE: %s/%s\n", tracker, example)
	fmt.Fprintf(&sb, "EXPECTED RESULT EXAMPLE: * [%s](%s/%s) Fixed an issue by @dev in https://github.com/acme/widget/pull/2329\n", example, tracker, example)
	sb.WriteString("\nINSTRUCTIONS:\n")
	sb.WriteString("- Follow this template and deep link each item with the ticket url as shown in the example.\n")
	sb.WriteString("- Always print the answer as raw text that GitHub release notes renders correctly, so the formatting survives editing.\n")
	fmt.Fprintf(&sb, "- Create a heading for each ticket ID type: %s\n", strings.Join(prefixes, ", "))
	fmt.Fprintf(&sb, "- Assign each line item to one of these headings by the ticket id number ascending:\n\n%s\n", raw)

	return sb.String()
}
