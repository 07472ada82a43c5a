package tui

import "errors"

var (
	// ErrAborted is returned by Run when the user cancels the selection.
	ErrAborted = errors.New("selection aborted")

	// ErrScreenRequired is returned when no screen is provided.
	ErrScreenRequired = errors.New("screen is required")

	// ErrSearcherRequired is returned when no searcher is provided.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrScreenClosed is returned by Run if the screen stops delivering events.
	ErrScreenClosed = errors.New("screen closed")
)
