package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrAuthRequired indicates no valid token is available; callers route
	// to the login/consent flow.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRemoteUnavailable indicates a network or provider API failure.
	// Logged at the boundary, listing left empty, no automatic retry.
	ErrRemoteUnavailable = errors.New("remote drive is unreachable")

	// ErrRefinementUnavailable indicates the LLM refinement call failed or
	// returned nothing usable; callers fall back to unfiltered matches.
	ErrRefinementUnavailable = errors.New("search refinement unavailable")

	// ErrPlaybackUnsupported indicates the player rejected the media.
	ErrPlaybackUnsupported = errors.New("playback not supported for this file")

	// ErrItemNotFound indicates the requested remote entry does not exist
	ErrItemNotFound = errors.New("file not found")
)
