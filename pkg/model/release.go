package model

import "time"

// Release represents a GitHub release.
type Release struct {
	ID              int64     `json:"id"`
	TagName         string    `json:"tagName"`
	Name            string    `json:"name"`
	Body            string    `json:"body,omitempty"`
	Draft           bool      `json:"draft"`
	Prerelease      bool      `json:"prerelease"`
	TargetCommitish string    `json:"targetCommitish,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	PublishedAt     time.Time `json:"publishedAt"`
	HTMLURL         string    `json:"htmlUrl"`
	Repo            RepoRef   `json:"repo"`
}
