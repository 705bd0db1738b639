package core

import (
	"context"
	"fmt"
	"sync"

	"firebase.google.com/go/v4/auth"

	"assistix-backend-go/internal/db"
	"assistix-backend-go/internal/models"
)

// The fakes below back the service tests with map-based storage. Watch
// methods deliver the current result set as a single snapshot and then close
// the updates channel; the error channel stays open so the forwarding loop
// drains the snapshot before it sees a teardown.

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	createErr error
	missReads int // GetByID returns ErrNotFound this many times before reading
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missReads > 0 {
		f.missReads--
		return nil, db.ErrNotFound
	}
	user, ok := f.users[uid]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.UID]; ok {
		return db.ErrAlreadyExists
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) SetFields(_ context.Context, uid string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[uid]
	if !ok {
		return db.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "photoURL":
			user.PhotoURL = value.(string)
		case "helpsGiven":
			user.HelpsGiven = value.(int)
		case "hasPassword":
			user.HasPassword = value.(bool)
		default:
			return fmt.Errorf("fakeUserRepo: unsupported field %q", key)
		}
	}
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.Request
	nextID   int

	setStatusErr error
	deleteErr    error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *models.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("req-%d", f.nextID)
	copied := *request
	copied.ID = id
	f.requests[id] = &copied
	return id, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, requestID string) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[requestID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) GetByCity(_ context.Context, city string) ([]*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collect(func(r *models.Request) bool { return r.City == city }), nil
}

func (f *fakeRequestRepo) GetByOwnerID(_ context.Context, ownerID string) ([]*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collect(func(r *models.Request) bool { return r.CreatedBy == ownerID }), nil
}

func (f *fakeRequestRepo) GetAll(_ context.Context) ([]*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collect(func(*models.Request) bool { return true }), nil
}

func (f *fakeRequestRepo) Any(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests) > 0, nil
}

func (f *fakeRequestRepo) SetStatus(_ context.Context, requestID string, status models.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	request, ok := f.requests[requestID]
	if !ok {
		return db.ErrNotFound
	}
	request.Status = status
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.requests, requestID)
	return nil
}

func (f *fakeRequestRepo) WatchByCity(ctx context.Context, city string) (<-chan []*models.Request, <-chan error) {
	requests, _ := f.GetByCity(ctx, city)
	return oneShot(requests)
}

func (f *fakeRequestRepo) WatchByOwnerID(ctx context.Context, ownerID string) (<-chan []*models.Request, <-chan error) {
	requests, _ := f.GetByOwnerID(ctx, ownerID)
	return oneShot(requests)
}

func (f *fakeRequestRepo) collect(keep func(*models.Request) bool) []*models.Request {
	var result []*models.Request
	for _, request := range f.requests {
		if keep(request) {
			copied := *request
			result = append(result, &copied)
		}
	}
	return result
}

type fakePitchRepo struct {
	mu      sync.Mutex
	pitches map[string]*models.Pitch
	nextID  int

	deleteErr error
}

func newFakePitchRepo() *fakePitchRepo {
	return &fakePitchRepo{pitches: make(map[string]*models.Pitch)}
}

func (f *fakePitchRepo) Create(_ context.Context, pitch *models.Pitch) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("pitch-%d", f.nextID)
	copied := *pitch
	copied.ID = id
	f.pitches[id] = &copied
	return id, nil
}

func (f *fakePitchRepo) GetByID(_ context.Context, pitchID string) (*models.Pitch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pitch, ok := f.pitches[pitchID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *pitch
	return &copied, nil
}

func (f *fakePitchRepo) GetByRequestID(_ context.Context, requestID string) ([]*models.Pitch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collect(func(p *models.Pitch) bool { return p.RequestID == requestID }), nil
}

func (f *fakePitchRepo) GetByHelperID(_ context.Context, helperID string) ([]*models.Pitch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collect(func(p *models.Pitch) bool { return p.HelperID == helperID }), nil
}

func (f *fakePitchRepo) GetByRequestAndHelper(_ context.Context, requestID, helperID string) (*models.Pitch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pitch := range f.pitches {
		if pitch.RequestID == requestID && pitch.HelperID == helperID {
			copied := *pitch
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakePitchRepo) Delete(_ context.Context, pitchID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.pitches, pitchID)
	return nil
}

func (f *fakePitchRepo) WatchByRequestID(ctx context.Context, requestID string) (<-chan []*models.Pitch, <-chan error) {
	pitches, _ := f.GetByRequestID(ctx, requestID)
	return oneShot(pitches)
}

func (f *fakePitchRepo) WatchByHelperID(ctx context.Context, helperID string) (<-chan []*models.Pitch, <-chan error) {
	pitches, _ := f.GetByHelperID(ctx, helperID)
	return oneShot(pitches)
}

func (f *fakePitchRepo) collect(keep func(*models.Pitch) bool) []*models.Pitch {
	var result []*models.Pitch
	for _, pitch := range f.pitches {
		if keep(pitch) {
			copied := *pitch
			result = append(result, &copied)
		}
	}
	return result
}

func oneShot[T any](snapshot []T) (<-chan []T, <-chan error) {
	updates := make(chan []T, 1)
	updates <- snapshot
	close(updates)
	return updates, make(chan error, 1)
}

// fakeAuthUpdater records password updates instead of calling Firebase.
type fakeAuthUpdater struct {
	mu      sync.Mutex
	updated map[string]int
	err     error
}

func newFakeAuthUpdater() *fakeAuthUpdater {
	return &fakeAuthUpdater{updated: make(map[string]int)}
}

func (f *fakeAuthUpdater) UpdateUser(_ context.Context, uid string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.updated[uid]++
	return &auth.UserRecord{}, nil
}

// recordingEvents captures emitted events for assertions.
type recordingEvents struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingEvents) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingEvents) byType(eventType string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []Event
	for _, event := range r.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
