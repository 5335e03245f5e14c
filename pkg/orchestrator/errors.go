package orchestrator

import "errors"

// Every failure returned by Run wraps exactly one of these kinds, so
// callers can switch on errors.Is without inspecting message text.
var (
	// ErrInvalidParameters marks configuration rejected before any
	// rendering work started.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrRenderBackend marks failures of the browser backend: launch,
	// navigation, scripting or screenshot capture.
	ErrRenderBackend = errors.New("render backend failure")

	// ErrEncoding marks failures after capture: frame store
	// validation, video encoding or writing the output file.
	ErrEncoding = errors.New("encoding failure")

	// ErrCancelled marks a run aborted by context cancellation.
	ErrCancelled = errors.New("cancelled")
)
