package model

import "time"

// CutResult contains the outcome of a single release cut.
type CutResult struct {
	Timestamp           time.Time `json:"timestamp"`
	DryRun              bool      `json:"dryRun"`
	Repo                RepoRef   `json:"repo"`
	RequestedTag        string    `json:"requestedTag"`
	EffectiveTag        string    `json:"effectiveTag"`
	Incremented         bool      `json:"incremented"`
	Branch              string    `json:"branch"`
	CommitSHA           string    `json:"commitSha,omitempty"`
	ReleaseID           int64     `json:"releaseId,omitempty"`
	ReleaseURL          string    `json:"releaseUrl,omitempty"`
	ReleaseReused       bool      `json:"releaseReused"`
	PriorReleaseDeleted bool      `json:"priorReleaseDeleted"`
	PriorTagDeleted     bool      `json:"priorTagDeleted"`
	TagCreated          bool      `json:"tagCreated"`
	Notes               string    `json:"notes,omitempty"`
	NotesPublished      bool      `json:"notesPublished"`
	Planned             []string  `json:"planned,omitempty"`
}
