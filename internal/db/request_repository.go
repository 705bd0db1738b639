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

const requestsCollection = "requests"

// firestoreRequestRepository implements the RequestRepository interface using Firestore.
type firestoreRequestRepository struct {
	client *firestore.Client
}

// NewFirestoreRequestRepository creates a new instance of firestoreRequestRepository.
func NewFirestoreRequestRepository(client *firestore.Client) RequestRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for RequestRepository.")
	}
	return &firestoreRequestRepository{client: client}
}

// Create adds a new request document with an auto-generated ID and sets
// request.ID before saving. CreatedAt is handled by the serverTimestamp tag.
func (r *firestoreRequestRepository) Create(ctx context.Context, request *models.Request) (string, error) {
	docRef := r.client.Collection(requestsCollection).NewDoc()
	request.ID = docRef.ID

	_, err := docRef.Create(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a request document from Firestore by its ID.
func (r *firestoreRequestRepository) GetByID(ctx context.Context, requestID string) (*models.Request, error) {
	if requestID == "" {
		return nil, errors.New("requestID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(requestsCollection).Doc(requestID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("request with ID '%s' not found: %w", requestID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get request with ID '%s': %w", requestID, err)
	}
	return decodeRequest(docSnap)
}

// GetByCity retrieves all requests in a city. The result is unordered; the
// service layer sorts by createdAt in memory so no composite index on
// (city, createdAt) has to exist.
func (r *firestoreRequestRepository) GetByCity(ctx context.Context, city string) ([]*models.Request, error) {
	if city == "" {
		return nil, errors.New("city cannot be empty for GetByCity operation")
	}
	query := r.client.Collection(requestsCollection).Where("city", "==", city)
	return r.getAll(ctx, query)
}

// GetByOwnerID retrieves all requests created by a user, unordered.
func (r *firestoreRequestRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Request, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetByOwnerID operation")
	}
	query := r.client.Collection(requestsCollection).Where("createdBy", "==", ownerID)
	return r.getAll(ctx, query)
}

// GetAll retrieves every request document. Used by the demo-data seeder's
// legacy cleanup pass.
func (r *firestoreRequestRepository) GetAll(ctx context.Context) ([]*models.Request, error) {
	return r.getAll(ctx, r.client.Collection(requestsCollection).Query)
}

// Any reports whether the requests collection holds at least one document.
func (r *firestoreRequestRepository) Any(ctx context.Context) (bool, error) {
	iter := r.client.Collection(requestsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe requests collection: %w", err)
	}
	return true, nil
}

// SetStatus overwrites only the status field of the request document.
func (r *firestoreRequestRepository) SetStatus(ctx context.Context, requestID string, statusValue models.RequestStatus) error {
	if requestID == "" {
		return errors.New("requestID cannot be empty for SetStatus operation")
	}
	_, err := r.client.Collection(requestsCollection).Doc(requestID).Update(ctx, []firestore.Update{
		{Path: "status", Value: statusValue},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("request with ID '%s' not found for status update: %w", requestID, ErrNotFound)
		}
		return fmt.Errorf("failed to set status for request '%s': %w", requestID, err)
	}
	return nil
}

// Delete removes a request document from Firestore. Associated pitches are
// the service layer's responsibility.
func (r *firestoreRequestRepository) Delete(ctx context.Context, requestID string) error {
	if requestID == "" {
		return errors.New("requestID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(requestsCollection).Doc(requestID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("request with ID '%s' not found for deletion: %w", requestID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete request with ID '%s': %w", requestID, err)
	}
	return nil
}

// WatchByCity opens a snapshot listener on the city-scoped query and emits
// the full result set on every server push until ctx is cancelled.
func (r *firestoreRequestRepository) WatchByCity(ctx context.Context, city string) (<-chan []*models.Request, <-chan error) {
	query := r.client.Collection(requestsCollection).Where("city", "==", city)
	return r.watch(ctx, query)
}

// WatchByOwnerID opens a snapshot listener on the owner-scoped query.
func (r *firestoreRequestRepository) WatchByOwnerID(ctx context.Context, ownerID string) (<-chan []*models.Request, <-chan error) {
	query := r.client.Collection(requestsCollection).Where("createdBy", "==", ownerID)
	return r.watch(ctx, query)
}

func (r *firestoreRequestRepository) getAll(ctx context.Context, query firestore.Query) ([]*models.Request, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var requests []*models.Request
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate requests: %w", err)
		}
		request, err := decodeRequest(doc)
		if err != nil {
			// Skip documents that no longer match the current schema.
			log.Printf("Error decoding request data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *firestoreRequestRepository) watch(ctx context.Context, query firestore.Query) (<-chan []*models.Request, <-chan error) {
	updates := make(chan []*models.Request)
	errs := make(chan error, 1)

	go func() {
		defer close(updates)
		defer close(errs)

		snapIter := query.Snapshots(ctx)
		defer snapIter.Stop()

		for {
			snap, err := snapIter.Next()
			if err != nil {
				// Cancellation is the normal teardown path, not a failure.
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				errs <- fmt.Errorf("request snapshot listener failed: %w", err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errs <- fmt.Errorf("failed to read request snapshot documents: %w", err)
				return
			}

			requests := make([]*models.Request, 0, len(docs))
			for _, doc := range docs {
				request, err := decodeRequest(doc)
				if err != nil {
					log.Printf("Error decoding request data (ID: %s) in snapshot: %v. Skipping.", doc.Ref.ID, err)
					continue
				}
				requests = append(requests, request)
			}

			select {
			case updates <- requests:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, errs
}

func decodeRequest(doc *firestore.DocumentSnapshot) (*models.Request, error) {
	var request models.Request
	if err := doc.DataTo(&request); err != nil {
		return nil, fmt.Errorf("failed to decode request data for ID '%s': %w", doc.Ref.ID, err)
	}
	request.ID = doc.Ref.ID
	return &request, nil
}
