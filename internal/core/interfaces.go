package core

import (
	"context"
	"io"

	"assistix-backend-go/internal/models"
)

// UserService defines the interface for user profile operations.
type UserService interface {
	// GetOrCreate retrieves a profile by UID, creating it from the auth
	// token claims if absent. The bool reports whether it was created.
	GetOrCreate(ctx context.Context, uid, email, name, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, payload models.UpdateProfilePayload) (*models.User, error)
	SetPhotoURL(ctx context.Context, uid, photoURL string) error
	// IncrementHelpsGiven bumps the helper's counter with a read-modify-write.
	IncrementHelpsGiven(ctx context.Context, uid string) error
	// LinkPassword attaches a password credential to an OAuth-only account
	// through the identity provider and flags the profile.
	LinkPassword(ctx context.Context, uid, password string) error
}

// RequestService defines the interface for help-request operations.
type RequestService interface {
	Create(ctx context.Context, ownerID string, payload models.CreateRequestPayload) (*models.Request, error)
	GetByID(ctx context.Context, requestID string) (*models.Request, error)
	// ListByCity returns the city-scoped list, newest first, with
	// denormalized creator fields, after applying the in-memory filter.
	ListByCity(ctx context.Context, city string, filter models.RequestFilter) ([]*models.Request, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Request, error)
	WatchByCity(ctx context.Context, city string, filter models.RequestFilter) (<-chan []*models.Request, <-chan error)
	WatchByOwner(ctx context.Context, ownerID string) (<-chan []*models.Request, <-chan error)
	// Complete transitions an owned request to completed and, when helperID
	// is set, credits that user's helpsGiven counter.
	Complete(ctx context.Context, ownerID, requestID, helperID string) (*models.Request, error)
	// Delete removes an owned request, then its pitches one by one.
	Delete(ctx context.Context, ownerID, requestID string) error
}

// PitchService defines the interface for pitch operations.
type PitchService interface {
	// Submit records a pitch after the duplicate pre-check and bumps the
	// parent request from open to in_review on the first pitch.
	Submit(ctx context.Context, helperID, requestID string, payload models.CreatePitchPayload) (*models.Pitch, error)
	ListForRequest(ctx context.Context, requestID string) ([]*models.Pitch, error)
	WatchForRequest(ctx context.Context, requestID string) (<-chan []*models.Pitch, <-chan error)
	ListByHelper(ctx context.Context, helperID string) ([]*models.Pitch, error)
	WatchByHelper(ctx context.Context, helperID string) (<-chan []*models.Pitch, <-chan error)
	HasPitched(ctx context.Context, requestID, helperID string) (bool, error)
	// Withdraw deletes the helper's own pitch.
	Withdraw(ctx context.Context, helperID, pitchID string) error
}

// StorageService defines the interface for object storage operations.
type StorageService interface {
	// UploadProfileImage stores the image at the fixed per-user key and
	// returns its public URL.
	UploadProfileImage(ctx context.Context, uid string, content io.Reader, contentType string) (string, error)
}

// SeedService defines the interface for demo fixture seeding.
type SeedService interface {
	// SeedDemoData populates fixtures once per process. Returns true when
	// fixtures were written, false when the collection was already populated
	// (in which case only the legacy cleanup runs).
	SeedDemoData(ctx context.Context) (bool, error)
}

// EventService publishes domain events for out-of-process notification
// fanout. Publishing is best-effort; implementations log failures and never
// surface them to the calling operation.
type EventService interface {
	Emit(event Event)
}
