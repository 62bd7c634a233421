package github

import (
	"fmt"
	"time"
)

// Release is the subset of the GitHub release resource in use.
type Release struct {
	ID              int64     `json:"id"`
	TagName         string    `json:"tag_name"`
	Name            string    `json:"name"`
	Body            string    `json:"body"`
	Draft           bool      `json:"draft"`
	Prerelease      bool      `json:"prerelease"`
	TargetCommitish string    `json:"target_commitish"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReleaseRequest is the payload for creating or updating a release.
type ReleaseRequest struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name"`
	Body            string `json:"body"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

type generateNotesRequest struct {
	TagName               string `json:"tag_name"`
	TargetCommitish       string `json:"target_commitish,omitempty"`
	PreviousTagName       string `json:"previous_tag_name,omitempty"`
	ConfigurationFilePath string `json:"configuration_file_path,omitempty"`
}

type generateNotesResponse struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("github api: status %d: %s", e.StatusCode, e.Message)
}

// errorBody is the JSON error document GitHub returns.
type errorBody struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
