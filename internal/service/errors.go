package service

import "errors"

var (
	// ErrUpstream marks failures of an external API call (transport error,
	// non-success status, or missing credential).
	ErrUpstream = errors.New("upstream API failure")

	// ErrParse marks an LLM response that was not valid JSON of the
	// expected shape.
	ErrParse = errors.New("unparseable model response")

	// ErrNoAPIKey is returned when a feature's credential is unconfigured.
	ErrNoAPIKey = errors.New("API key not configured")

	// ErrDraftNotFound covers both missing and expired drafts.
	ErrDraftNotFound = errors.New("draft not found or expired")
)
