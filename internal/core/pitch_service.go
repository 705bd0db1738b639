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

// unknownRequestTitle is the display fallback for a pitch whose parent
// request has been deleted out from under it (the cascade is best-effort).
const unknownRequestTitle = "Unknown Request"

// pitchService implements the PitchService interface.
type pitchService struct {
	pitchRepo   db.PitchRepository
	requestRepo db.RequestRepository
	directory   *profileDirectory
	events      EventService
	logger      *zap.Logger
}

// NewPitchService creates a new PitchService instance.
func NewPitchService(
	pitchRepo db.PitchRepository,
	requestRepo db.RequestRepository,
	userRepo db.UserRepository,
	c cache.Cache,
	events EventService,
	logger *zap.Logger,
) PitchService {
	return &pitchService{
		pitchRepo:   pitchRepo,
		requestRepo: requestRepo,
		directory:   newProfileDirectory(userRepo, c, logger),
		events:      events,
		logger:      logger,
	}
}

// Submit records a pitch for a request the caller does not own. The
// duplicate check is a read before the write; two near-simultaneous
// submissions can both pass it, which is accepted behavior. After the write
// the parent request is bumped from open to in_review with a second
// read-modify-write.
func (s *pitchService) Submit(ctx context.Context, helperID, requestID string, payload models.CreatePitchPayload) (*models.Pitch, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: request with ID '%s'", ErrRequestNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to get request '%s' for pitch: %w", requestID, err)
	}
	if request.CreatedBy == helperID {
		return nil, ErrOwnRequestPitch
	}

	// Duplicate pre-check: one pitch per (requestId, helperId).
	_, err = s.pitchRepo.GetByRequestAndHelper(ctx, requestID, helperID)
	if err == nil {
		return nil, ErrDuplicatePitch
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed duplicate-pitch check for request '%s': %w", requestID, err)
	}

	skills := payload.Skills
	if skills == nil {
		skills = []string{}
	}
	pitch := &models.Pitch{
		RequestID: requestID,
		HelperID:  helperID,
		PitchText: payload.PitchText,
		Skills:    skills,
		CreatedAt: time.Now().UTC(),
	}
	pitchID, err := s.pitchRepo.Create(ctx, pitch)
	if err != nil {
		return nil, fmt.Errorf("failed to create pitch for request '%s': %w", requestID, err)
	}
	pitch.ID = pitchID

	// First pitch moves the request into review. Re-read so a transition
	// that already happened is not repeated; still not atomic.
	current, err := s.requestRepo.GetByID(ctx, requestID)
	if err == nil && current.Status == models.StatusOpen {
		if err := s.requestRepo.SetStatus(ctx, requestID, models.StatusInReview); err != nil {
			s.logger.Warn("Pitch recorded but open->in_review bump failed",
				zap.String("requestId", requestID),
				zap.Error(err))
		}
	}

	s.events.Emit(Event{
		Type:      EventPitchCreated,
		ActorID:   helperID,
		RequestID: requestID,
		PitchID:   pitchID,
		City:      request.City,
	})

	return pitch, nil
}

// ListForRequest returns a request's pitches, newest first, with helper
// display fields resolved one lookup per item.
func (s *pitchService) ListForRequest(ctx context.Context, requestID string) ([]*models.Pitch, error) {
	pitches, err := s.pitchRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pitches for request '%s': %w", requestID, err)
	}
	s.presentForRequest(ctx, pitches)
	return pitches, nil
}

// WatchForRequest streams a request's pitches on every snapshot.
func (s *pitchService) WatchForRequest(ctx context.Context, requestID string) (<-chan []*models.Pitch, <-chan error) {
	raw, rawErrs := s.pitchRepo.WatchByRequestID(ctx, requestID)
	return s.pipe(ctx, raw, rawErrs, s.presentForRequest)
}

// ListByHelper returns the helper's pitches, newest first, each annotated
// with the parent request title.
func (s *pitchService) ListByHelper(ctx context.Context, helperID string) ([]*models.Pitch, error) {
	pitches, err := s.pitchRepo.GetByHelperID(ctx, helperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pitches for helper '%s': %w", helperID, err)
	}
	s.presentForHelper(ctx, pitches)
	return pitches, nil
}

// WatchByHelper streams the helper's pitches on every snapshot.
func (s *pitchService) WatchByHelper(ctx context.Context, helperID string) (<-chan []*models.Pitch, <-chan error) {
	raw, rawErrs := s.pitchRepo.WatchByHelperID(ctx, helperID)
	return s.pipe(ctx, raw, rawErrs, s.presentForHelper)
}

// HasPitched reports whether the helper already has a pitch on the request.
func (s *pitchService) HasPitched(ctx context.Context, requestID, helperID string) (bool, error) {
	_, err := s.pitchRepo.GetByRequestAndHelper(ctx, requestID, helperID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check pitch for request '%s' by helper '%s': %w", requestID, helperID, err)
}

// Withdraw deletes the helper's own pitch.
func (s *pitchService) Withdraw(ctx context.Context, helperID, pitchID string) error {
	pitch, err := s.pitchRepo.GetByID(ctx, pitchID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: pitch with ID '%s'", ErrPitchNotFound, pitchID)
		}
		return fmt.Errorf("failed to get pitch '%s' for withdrawal: %w", pitchID, err)
	}
	if pitch.HelperID != helperID {
		return fmt.Errorf("%w: user '%s' does not own pitch '%s'", ErrForbiddenAccess, helperID, pitchID)
	}
	if err := s.pitchRepo.Delete(ctx, pitchID); err != nil {
		return fmt.Errorf("failed to delete pitch '%s': %w", pitchID, err)
	}
	return nil
}

func (s *pitchService) pipe(
	ctx context.Context,
	raw <-chan []*models.Pitch,
	rawErrs <-chan error,
	presentFn func(context.Context, []*models.Pitch),
) (<-chan []*models.Pitch, <-chan error) {
	out := make(chan []*models.Pitch)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case pitches, ok := <-raw:
				if !ok {
					return
				}
				presentFn(ctx, pitches)
				select {
				case out <- pitches:
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

func (s *pitchService) presentForRequest(ctx context.Context, pitches []*models.Pitch) {
	sortPitchesNewestFirst(pitches)
	for _, pitch := range pitches {
		profile := s.directory.lookup(ctx, pitch.HelperID)
		pitch.HelperName = profile.Name
		pitch.HelperPhoto = profile.PhotoURL
	}
}

func (s *pitchService) presentForHelper(ctx context.Context, pitches []*models.Pitch) {
	sortPitchesNewestFirst(pitches)
	for _, pitch := range pitches {
		request, err := s.requestRepo.GetByID(ctx, pitch.RequestID)
		if err != nil {
			pitch.RequestTitle = unknownRequestTitle
			continue
		}
		pitch.RequestTitle = request.Title
	}
}

func sortPitchesNewestFirst(pitches []*models.Pitch) {
	sort.SliceStable(pitches, func(i, j int) bool {
		return pitches[i].CreatedAt.After(pitches[j].CreatedAt)
	})
}
