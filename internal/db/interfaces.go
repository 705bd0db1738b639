package db

import (
	"context"

	"assistix-backend-go/internal/models"
)

// UserRepository defines the interface for user profile storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// SetFields applies a partial update to named fields of the user document.
	SetFields(ctx context.Context, uid string, fields map[string]interface{}) error
}

// RequestRepository defines the interface for help-request storage operations.
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) (string, error) // Returns new request ID
	GetByID(ctx context.Context, requestID string) (*models.Request, error)
	// GetByCity returns requests in a city, unordered. City is the only
	// server-side predicate; callers sort in memory so no composite index
	// on (city, createdAt) is needed.
	GetByCity(ctx context.Context, city string) ([]*models.Request, error)
	// GetByOwnerID returns requests created by a user, unordered for the
	// same reason.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Request, error)
	// GetAll returns every request document. Only the seeder's legacy
	// cleanup walks the full collection.
	GetAll(ctx context.Context) ([]*models.Request, error)
	// Any reports whether the collection holds at least one document.
	Any(ctx context.Context) (bool, error)
	// SetStatus overwrites only the status field of the request document.
	SetStatus(ctx context.Context, requestID string, status models.RequestStatus) error
	Delete(ctx context.Context, requestID string) error
	// WatchByCity streams the city-scoped result set on every snapshot until
	// ctx is cancelled. Both channels are closed on teardown.
	WatchByCity(ctx context.Context, city string) (<-chan []*models.Request, <-chan error)
	// WatchByOwnerID streams the owner-scoped result set.
	WatchByOwnerID(ctx context.Context, ownerID string) (<-chan []*models.Request, <-chan error)
}

// PitchRepository defines the interface for pitch storage operations.
type PitchRepository interface {
	Create(ctx context.Context, pitch *models.Pitch) (string, error) // Returns new pitch ID
	GetByID(ctx context.Context, pitchID string) (*models.Pitch, error)
	GetByRequestID(ctx context.Context, requestID string) ([]*models.Pitch, error)
	GetByHelperID(ctx context.Context, helperID string) ([]*models.Pitch, error)
	// GetByRequestAndHelper returns the pitch for the pair, or ErrNotFound.
	// Backs the duplicate-pitch pre-check.
	GetByRequestAndHelper(ctx context.Context, requestID, helperID string) (*models.Pitch, error)
	Delete(ctx context.Context, pitchID string) error
	WatchByRequestID(ctx context.Context, requestID string) (<-chan []*models.Pitch, <-chan error)
	WatchByHelperID(ctx context.Context, helperID string) (<-chan []*models.Pitch, <-chan error)
}
