package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"assistix-backend-go/internal/db"
	"assistix-backend-go/internal/models"
	"assistix-backend-go/pkg/cache"
)

// requestService implements the RequestService interface.
type requestService struct {
	requestRepo db.RequestRepository
	pitchRepo   db.PitchRepository
	userRepo    db.UserRepository
	userService UserService
	directory   *profileDirectory
	events      EventService
	logger      *zap.Logger
}

// NewRequestService creates a new RequestService instance.
func NewRequestService(
	requestRepo db.RequestRepository,
	pitchRepo db.PitchRepository,
	userRepo db.UserRepository,
	userService UserService,
	c cache.Cache,
	events EventService,
	logger *zap.Logger,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		pitchRepo:   pitchRepo,
		userRepo:    userRepo,
		userService: userService,
		directory:   newProfileDirectory(userRepo, c, logger),
		events:      events,
		logger:      logger,
	}
}

// Create posts a new request owned by ownerID with status open. The city
// comes from the payload or falls back to the owner's active city.
func (s *requestService) Create(ctx context.Context, ownerID string, payload models.CreateRequestPayload) (*models.Request, error) {
	if !models.IsValidCategory(payload.Category) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidCategory, payload.Category)
	}

	city := payload.City
	if city == "" {
		owner, err := s.userRepo.GetByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: user with UID '%s'", ErrUserNotFound, ownerID)
			}
			return nil, fmt.Errorf("failed to get owner '%s' for city default: %w", ownerID, err)
		}
		city = owner.ActiveCity
	}
	if city == "" {
		return nil, ErrNoCity
	}
	if !models.IsValidCity(city) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidCity, city)
	}

	request := &models.Request{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Payment:     payload.Payment,
		CreatedBy:   ownerID,
		Status:      models.StatusOpen,
		City:        city,
		Area:        payload.Area,
		Society:     payload.Society,
		CreatedAt:   time.Now().UTC(),
	}

	requestID, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.ID = requestID

	s.events.Emit(Event{
		Type:      EventRequestCreated,
		ActorID:   ownerID,
		RequestID: requestID,
		City:      city,
	})

	return request, nil
}

// GetByID retrieves a single request with denormalized creator fields.
func (s *requestService) GetByID(ctx context.Context, requestID string) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: request with ID '%s'", ErrRequestNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to get request '%s': %w", requestID, err)
	}
	s.decorate(ctx, request)
	return request, nil
}

// ListByCity returns the city-scoped list, newest first, filtered in memory
// and with creator display fields resolved per item.
func (s *requestService) ListByCity(ctx context.Context, city string, filter models.RequestFilter) ([]*models.Request, error) {
	if !models.IsValidCity(city) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidCity, city)
	}
	requests, err := s.requestRepo.GetByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for city '%s': %w", city, err)
	}
	return s.present(ctx, requests, &filter), nil
}

// ListByOwner returns the owner's requests, newest first. No denormalization
// is needed: the owner is looking at their own posts.
func (s *requestService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Request, error) {
	requests, err := s.requestRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for owner '%s': %w", ownerID, err)
	}
	sortRequestsNewestFirst(requests)
	return requests, nil
}

// WatchByCity streams the city-scoped list, re-presented on every snapshot.
func (s *requestService) WatchByCity(ctx context.Context, city string, filter models.RequestFilter) (<-chan []*models.Request, <-chan error) {
	raw, rawErrs := s.requestRepo.WatchByCity(ctx, city)
	out := make(chan []*models.Request)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case requests, ok := <-raw:
				if !ok {
					return
				}
				select {
				case out <- s.present(ctx, requests, &filter):
				case <-ctx.Done():
					return
				}
			case err, ok := <-rawErrs:
				if ok && err != nil {
					errs <- err
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errs
}

// WatchByOwner streams the owner-scoped list, sorted on every snapshot.
func (s *requestService) WatchByOwner(ctx context.Context, ownerID string) (<-chan []*models.Request, <-chan error) {
	raw, rawErrs := s.requestRepo.WatchByOwnerID(ctx, ownerID)
	out := make(chan []*models.Request)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case requests, ok := <-raw:
				if !ok {
					return
				}
				sortRequestsNewestFirst(requests)
				select {
				case out <- requests:
				case <-ctx.Done():
					return
				}
			case err, ok := <-rawErrs:
				if ok && err != nil {
					errs <- err
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errs
}

// Complete transitions an owned request to completed. When helperID is set,
// that user's helpsGiven counter is credited; a failed credit does not roll
// back the completion.
func (s *requestService) Complete(ctx context.Context, ownerID, requestID, helperID string) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: request with ID '%s'", ErrRequestNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to get request '%s' for completion: %w", requestID, err)
	}
	if request.CreatedBy != ownerID {
		return nil, fmt.Errorf("%w: user '%s' does not own request '%s'", ErrForbiddenAccess, ownerID, requestID)
	}
	if !models.CanTransition(request.Status, models.StatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, models.StatusCompleted)
	}

	if err := s.requestRepo.SetStatus(ctx, requestID, models.StatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to mark request '%s' completed: %w", requestID, err)
	}
	request.Status = models.StatusCompleted

	if helperID != "" {
		if err := s.userService.IncrementHelpsGiven(ctx, helperID); err != nil {
			s.logger.Warn("Request completed but helpsGiven credit failed",
				zap.String("requestId", requestID),
				zap.String("helperId", helperID),
				zap.Error(err))
		}
	}

	s.events.Emit(Event{
		Type:      EventRequestCompleted,
		ActorID:   ownerID,
		RequestID: requestID,
		City:      request.City,
	})

	return request, nil
}

// Delete removes an owned request, then each of its pitches in sequence.
// A failure mid-loop leaves orphaned pitches behind; there is no
// compensating transaction.
func (s *requestService) Delete(ctx context.Context, ownerID, requestID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: request with ID '%s'", ErrRequestNotFound, requestID)
		}
		return fmt.Errorf("failed to get request '%s' for deletion: %w", requestID, err)
	}
	if request.CreatedBy != ownerID {
		return fmt.Errorf("%w: user '%s' does not own request '%s'", ErrForbiddenAccess, ownerID, requestID)
	}

	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete request '%s': %w", requestID, err)
	}

	pitches, err := s.pitchRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("request '%s' deleted but pitch cleanup query failed: %w", requestID, err)
	}
	for _, pitch := range pitches {
		if err := s.pitchRepo.Delete(ctx, pitch.ID); err != nil {
			return fmt.Errorf("request '%s' deleted but pitch '%s' cleanup failed: %w", requestID, pitch.ID, err)
		}
	}

	s.events.Emit(Event{
		Type:      EventRequestDeleted,
		ActorID:   ownerID,
		RequestID: requestID,
		City:      request.City,
	})

	return nil
}

// present sorts newest first, applies the in-memory filter, and resolves
// creator display fields one lookup per item.
func (s *requestService) present(ctx context.Context, requests []*models.Request, filter *models.RequestFilter) []*models.Request {
	sortRequestsNewestFirst(requests)
	result := make([]*models.Request, 0, len(requests))
	for _, request := range requests {
		if filter != nil && !filter.Matches(request) {
			continue
		}
		s.decorate(ctx, request)
		result = append(result, request)
	}
	return result
}

func (s *requestService) decorate(ctx context.Context, request *models.Request) {
	profile := s.directory.lookup(ctx, request.CreatedBy)
	request.CreatorName = profile.Name
	request.CreatorPhoto = profile.PhotoURL
}

func sortRequestsNewestFirst(requests []*models.Request) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}
