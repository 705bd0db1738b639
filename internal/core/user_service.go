package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"assistix-backend-go/internal/db"
	"assistix-backend-go/internal/models"
	"assistix-backend-go/pkg/cache"
)

// AuthUpdater is the slice of the Firebase Auth admin client the user
// service needs. *auth.Client satisfies it.
type AuthUpdater interface {
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo   db.UserRepository
	authClient AuthUpdater
	directory  *profileDirectory
	logger     *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, authClient AuthUpdater, c cache.Cache, logger *zap.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		authClient: authClient,
		directory:  newProfileDirectory(userRepo, c, logger),
		logger:     logger,
	}
}

// GetOrCreate retrieves a profile by UID, creating it on first sign-in with
// zeroed counters and empty skills. The read-then-create is idempotent per
// UID; when two first sign-ins race, the losing Create reports an existing
// document and we fall back to a re-read instead of failing.
func (s *userService) GetOrCreate(ctx context.Context, uid, email, name, photoURL string) (*models.User, bool, error) {
	if s.userRepo == nil {
		return nil, false, errors.New("UserRepository not initialized in UserService")
	}

	user, err := s.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user '%s' from repository: %w", uid, err)
	}

	if name == "" {
		name = "Anonymous User"
	}
	newUser := &models.User{
		UID:        uid,
		Name:       name,
		Email:      email,
		PhotoURL:   photoURL,
		Skills:     []string{},
		HelpsGiven: 0,
		CreatedAt:  time.Now().UTC(),
	}

	createErr := s.userRepo.Create(ctx, newUser)
	if createErr == nil {
		return newUser, true, nil
	}
	if errors.Is(createErr, db.ErrAlreadyExists) {
		// Lost a concurrent first sign-in for the same UID.
		existing, getErr := s.userRepo.GetByID(ctx, uid)
		if getErr != nil {
			return nil, false, fmt.Errorf("failed to re-read user '%s' after create collision: %w", uid, getErr)
		}
		return existing, false, nil
	}
	return nil, false, fmt.Errorf("failed to create profile for user '%s': %w", uid, createErr)
}

// GetByID retrieves a user profile by UID.
func (s *userService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with UID '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user '%s' from repository: %w", uid, err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's profile. The active
// city must come from the fixed city list.
func (s *userService) UpdateProfile(ctx context.Context, uid string, payload models.UpdateProfilePayload) (*models.User, error) {
	user, err := s.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		user.Name = *payload.Name
	}
	if payload.Skills != nil {
		user.Skills = *payload.Skills
	}
	if payload.ActiveCity != nil {
		if *payload.ActiveCity != "" && !models.IsValidCity(*payload.ActiveCity) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidCity, *payload.ActiveCity)
		}
		user.ActiveCity = *payload.ActiveCity
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile for user '%s': %w", uid, err)
	}
	s.directory.invalidate(ctx, uid)
	return user, nil
}

// SetPhotoURL writes the uploaded image URL back to the profile document.
func (s *userService) SetPhotoURL(ctx context.Context, uid, photoURL string) error {
	err := s.userRepo.SetFields(ctx, uid, map[string]interface{}{"photoURL": photoURL})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user with UID '%s'", ErrUserNotFound, uid)
		}
		return fmt.Errorf("failed to set photoURL for user '%s': %w", uid, err)
	}
	s.directory.invalidate(ctx, uid)
	return nil
}

// IncrementHelpsGiven bumps the helper's counter. Read-modify-write, not
// atomic against concurrent completions crediting the same helper.
func (s *userService) IncrementHelpsGiven(ctx context.Context, uid string) error {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user with UID '%s'", ErrUserNotFound, uid)
		}
		return fmt.Errorf("failed to get user '%s' for helpsGiven increment: %w", uid, err)
	}
	err = s.userRepo.SetFields(ctx, uid, map[string]interface{}{"helpsGiven": user.HelpsGiven + 1})
	if err != nil {
		return fmt.Errorf("failed to increment helpsGiven for user '%s': %w", uid, err)
	}
	return nil
}

// LinkPassword attaches a password credential to an OAuth-only account via
// the identity provider, then records the linked state on the profile.
func (s *userService) LinkPassword(ctx context.Context, uid, password string) error {
	if s.authClient == nil {
		return errors.New("auth client not initialized in UserService")
	}
	if _, err := s.authClient.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(password)); err != nil {
		return fmt.Errorf("failed to link password for user '%s': %w", uid, err)
	}
	err := s.userRepo.SetFields(ctx, uid, map[string]interface{}{"hasPassword": true})
	if err != nil {
		// The credential is linked; only the profile flag failed. Log and
		// report so the client can retry the flag write via profile update.
		s.logger.Warn("Password linked but hasPassword flag write failed", zap.String("uid", uid), zap.Error(err))
		return fmt.Errorf("password linked but profile flag update failed for user '%s': %w", uid, err)
	}
	return nil
}
