package core

import "errors"

// Sentinel errors shared by the core services. Handlers map these to HTTP
// status codes.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrPitchNotFound   = errors.New("pitch not found")

	ErrForbiddenAccess = errors.New("user does not have permission for this action")

	// ErrDuplicatePitch is raised by the read-before-write existence check.
	ErrDuplicatePitch = errors.New("you have already pitched for this request")
	// ErrOwnRequestPitch guards against owners pitching their own requests.
	ErrOwnRequestPitch = errors.New("cannot pitch your own request")

	ErrInvalidTransition = errors.New("invalid request status transition")
	ErrInvalidCategory   = errors.New("unknown request category")
	ErrInvalidCity       = errors.New("unknown city")
	// ErrNoCity is returned when a request has no city and the owner has not
	// selected an active city either.
	ErrNoCity = errors.New("no city selected")
)
