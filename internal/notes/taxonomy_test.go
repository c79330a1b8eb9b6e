package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTaxonomy(t *testing.T) {
	tx := DefaultTaxonomy()

	if len(tx.TicketPrefixes) != 3 {
		t.Fatalf("expected 3 default prefixes, got %d", len(tx.TicketPrefixes))
	}
	for i, expected := range []string{"PD", "PDE", "PRDY"} {
		if tx.TicketPrefixes[i] != expected {
			t.Errorf("expected prefix %s at %d, got %s", expected, i, tx.TicketPrefixes[i])
		}
	}
	if tx.TrackerURL == "" {
		t.Error("expected a default tracker URL")
	}
}

func TestLoadTaxonomyFromFile(t *testing.T) {
	content := `ticketPrefixes:
  - ENG
  - OPS
trackerUrl: https://tracker.example.com/browse
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write taxonomy file: %v", err)
	}

	tx, err := LoadTaxonomyFromFile(path)
	if err != nil {
		t.Fatalf("LoadTaxonomyFromFile failed: %v", err)
	}

	if len(tx.TicketPrefixes) != 2 || tx.TicketPrefixes[0] != "ENG" || tx.TicketPrefixes[1] != "OPS" {
		t.Errorf("unexpected prefixes: %v", tx.TicketPrefixes)
	}
	if tx.TrackerURL != "https://tracker.example.com/browse" {
		t.Errorf("unexpected tracker URL: %s", tx.TrackerURL)
	}
}

func TestLoadTaxonomyFromFile_FillsDefaults(t *testing.T) {
	content := `trackerUrl: https://tracker.example.com/browse
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write taxonomy file: %v", err)
	}

	tx, err := LoadTaxonomyFromFile(path)
	if err != nil {
		t.Fatalf("LoadTaxonomyFromFile failed: %v", err)
	}

	if len(tx.TicketPrefixes) != 3 {
		t.Errorf("expected default prefixes to fill in, got %v", tx.TicketPrefixes)
	}
	if tx.TrackerURL != "https://tracker.example.com/browse" {
		t.Errorf("expected tracker URL to be kept, got %s", tx.TrackerURL)
	}
}

func TestLoadTaxonomyFromFile_Missing(t *testing.T) {
	if _, err := LoadTaxonomyFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadTaxonomyFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte("ticketPrefixes: ["), 0600); err != nil {
		t.Fatalf("failed to write taxonomy file: %v", err)
	}

	if _, err := LoadTaxonomyFromFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestTaxonomy_BuildPrompt(t *testing.T) {
	raw := "PDE-1234: Fixed bug\nPRDY-5678: Added feature"
	prompt := DefaultTaxonomy().BuildPrompt(raw)

	if !strings.Contains(prompt, raw) {
		t.Error("expected prompt to contain the raw notes")
	}
	if !strings.Contains(prompt, "TEMPLATE: https://onezelis.atlassian.net/browse/[Ticket ID]") {
		t.Error("expected prompt to contain the template line")
	}
	if !strings.Contains(prompt, "PD, PDE, PRDY") {
		t.Error("expected prompt to list the heading prefixes")
	}
}

func TestTaxonomy_BuildPrompt_ZeroValue(t *testing.T) {
	prompt := Taxonomy{}.BuildPrompt("line")

	if !strings.Contains(prompt, "PD, PDE, PRDY") {
		t.Error("expected zero-value taxonomy to fall back to defaults")
	}
	if !strings.Contains(prompt, "line") {
		t.Error("expected prompt to contain the raw notes")
	}
}

func TestTaxonomy_BuildPrompt_CustomTracker(t *testing.T) {
	tx := Taxonomy{
		TicketPrefixes: []string{"ENG"},
		TrackerURL:     "https://tracker.example.com/browse/",
	}
	prompt := tx.BuildPrompt("ENG-1: did a thing")

	if !strings.Contains(prompt, "https://tracker.example.com/browse/[Ticket ID]") {
		t.Error("expected trailing slash on tracker URL to be normalized")
	}
	if !strings.Contains(prompt, "ENG-3441") {
		t.Error("expected example to use the first configured prefix")
	}
}
