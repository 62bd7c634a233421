// Package github is a minimal GitHub REST client covering what drafting a
// release needs: listing releases, generating release notes between two
// tags, and creating or updating a release.
//
// Transient failures (connection errors, 429 and 5xx responses) are retried
// by the transport with exponential backoff; everything else is returned to
// the caller as an *APIError.
package github
