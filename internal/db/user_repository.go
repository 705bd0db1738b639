package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"assistix-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is returned when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyExists is returned when a document create collides with an
// existing document, e.g. two concurrent first sign-ins for the same UID.
var ErrAlreadyExists = errors.New("document already exists")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document to Firestore. The user.UID (Firebase Auth
// UID) is used as the document ID. CreatedAt is populated server-side via the
// serverTimestamp tag.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with UID '%s' already exists: %w", user.UID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// GetByID retrieves a user document from Firestore by its Firebase Auth UID.
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with UID '%s': %w", uid, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for UID '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID // Ensure UID is populated from the document reference

	return &user, nil
}

// Update overwrites the user document with the given state, merging so a
// partial struct cannot wipe fields it does not carry.
func (r *firestoreUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Set(ctx, user, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// SetFields applies a partial update to named fields of the user document.
// Used for single-field mutations like photoURL, hasPassword, and the
// helpsGiven counter, where sending the whole struct would be wasteful.
func (r *firestoreUserRepository) SetFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	if uid == "" {
		return errors.New("uid cannot be empty for SetFields operation")
	}
	if len(fields) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with UID '%s' not found for update: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update fields for user '%s': %w", uid, err)
	}
	return nil
}
