package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"assistix-backend-go/internal/models"
)

const pitchesCollection = "pitches"

// firestorePitchRepository implements the PitchRepository interface using Firestore.
type firestorePitchRepository struct {
	client *firestore.Client
}

// NewFirestorePitchRepository creates a new instance of firestorePitchRepository.
func NewFirestorePitchRepository(client *firestore.Client) PitchRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PitchRepository.")
	}
	return &firestorePitchRepository{client: client}
}

// Create adds a new pitch document with an auto-generated ID and sets
// pitch.ID before saving. CreatedAt is handled by the serverTimestamp tag.
func (r *firestorePitchRepository) Create(ctx context.Context, pitch *models.Pitch) (string, error) {
	docRef := r.client.Collection(pitchesCollection).NewDoc()
	pitch.ID = docRef.ID

	_, err := docRef.Create(ctx, pitch)
	if err != nil {
		return "", fmt.Errorf("failed to create pitch: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a pitch document from Firestore by its ID.
func (r *firestorePitchRepository) GetByID(ctx context.Context, pitchID string) (*models.Pitch, error) {
	if pitchID == "" {
		return nil, errors.New("pitchID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(pitchesCollection).Doc(pitchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("pitch with ID '%s' not found: %w", pitchID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pitch with ID '%s': %w", pitchID, err)
	}
	return decodePitch(docSnap)
}

// GetByRequestID retrieves all pitches referencing a request, unordered.
func (r *firestorePitchRepository) GetByRequestID(ctx context.Context, requestID string) ([]*models.Pitch, error) {
	if requestID == "" {
		return nil, errors.New("requestID cannot be empty for GetByRequestID operation")
	}
	query := r.client.Collection(pitchesCollection).Where("requestId", "==", requestID)
	return r.getAll(ctx, query)
}

// GetByHelperID retrieves all pitches submitted by a user, unordered.
func (r *firestorePitchRepository) GetByHelperID(ctx context.Context, helperID string) ([]*models.Pitch, error) {
	if helperID == "" {
		return nil, errors.New("helperID cannot be empty for GetByHelperID operation")
	}
	query := r.client.Collection(pitchesCollection).Where("helperId", "==", helperID)
	return r.getAll(ctx, query)
}

// GetByRequestAndHelper returns the pitch for the (requestId, helperId) pair
// or ErrNotFound. This backs the duplicate-pitch pre-check; the check and the
// subsequent Create are not atomic, which is accepted behavior.
func (r *firestorePitchRepository) GetByRequestAndHelper(ctx context.Context, requestID, helperID string) (*models.Pitch, error) {
	if requestID == "" || helperID == "" {
		return nil, errors.New("requestID and helperID cannot be empty for GetByRequestAndHelper operation")
	}
	query := r.client.Collection(pitchesCollection).
		Where("requestId", "==", requestID).
		Where("helperId", "==", helperID).
		Limit(1)

	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("no pitch for request '%s' by helper '%s': %w", requestID, helperID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pitch for request '%s' by helper '%s': %w", requestID, helperID, err)
	}
	return decodePitch(doc)
}

// Delete removes a pitch document from Firestore.
func (r *firestorePitchRepository) Delete(ctx context.Context, pitchID string) error {
	if pitchID == "" {
		return errors.New("pitchID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(pitchesCollection).Doc(pitchID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("pitch with ID '%s' not found for deletion: %w", pitchID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete pitch with ID '%s': %w", pitchID, err)
	}
	return nil
}

// WatchByRequestID opens a snapshot listener on the request-scoped query.
func (r *firestorePitchRepository) WatchByRequestID(ctx context.Context, requestID string) (<-chan []*models.Pitch, <-chan error) {
	query := r.client.Collection(pitchesCollection).Where("requestId", "==", requestID)
	return r.watch(ctx, query)
}

// WatchByHelperID opens a snapshot listener on the helper-scoped query.
func (r *firestorePitchRepository) WatchByHelperID(ctx context.Context, helperID string) (<-chan []*models.Pitch, <-chan error) {
	query := r.client.Collection(pitchesCollection).Where("helperId", "==", helperID)
	return r.watch(ctx, query)
}

func (r *firestorePitchRepository) getAll(ctx context.Context, query firestore.Query) ([]*models.Pitch, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var pitches []*models.Pitch
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate pitches: %w", err)
		}
		pitch, err := decodePitch(doc)
		if err != nil {
			log.Printf("Error decoding pitch data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		pitches = append(pitches, pitch)
	}
	return pitches, nil
}

func (r *firestorePitchRepository) watch(ctx context.Context, query firestore.Query) (<-chan []*models.Pitch, <-chan error) {
	updates := make(chan []*models.Pitch)
	errs := make(chan error, 1)

	go func() {
		defer close(updates)
		defer close(errs)

		snapIter := query.Snapshots(ctx)
		defer snapIter.Stop()

		for {
			snap, err := snapIter.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				errs <- fmt.Errorf("pitch snapshot listener failed: %w", err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errs <- fmt.Errorf("failed to read pitch snapshot documents: %w", err)
				return
			}

			pitches := make([]*models.Pitch, 0, len(docs))
			for _, doc := range docs {
				pitch, err := decodePitch(doc)
				if err != nil {
					log.Printf("Error decoding pitch data (ID: %s) in snapshot: %v. Skipping.", doc.Ref.ID, err)
					continue
				}
				pitches = append(pitches, pitch)
			}

			select {
			case updates <- pitches:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, errs
}

func decodePitch(doc *firestore.DocumentSnapshot) (*models.Pitch, error) {
	var pitch models.Pitch
	if err := doc.DataTo(&pitch); err != nil {
		return nil, fmt.Errorf("failed to decode pitch data for ID '%s': %w", doc.Ref.ID, err)
	}
	pitch.ID = doc.Ref.ID
	return &pitch, nil
}
