package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"assistix-backend-go/internal/models"
	"assistix-backend-go/pkg/cache"
)

type pitchServiceFixture struct {
	userRepo    *fakeUserRepo
	requestRepo *fakeRequestRepo
	pitchRepo   *fakePitchRepo
	events      *recordingEvents
	svc         PitchService
}

func newPitchServiceFixture() *pitchServiceFixture {
	f := &pitchServiceFixture{
		userRepo:    newFakeUserRepo(),
		requestRepo: newFakeRequestRepo(),
		pitchRepo:   newFakePitchRepo(),
		events:      &recordingEvents{},
	}
	f.svc = NewPitchService(f.pitchRepo, f.requestRepo, f.userRepo, cache.Noop{}, f.events, zap.NewNop())
	return f
}

func (f *pitchServiceFixture) addRequest(t *testing.T, r models.Request) string {
	t.Helper()
	id, err := f.requestRepo.Create(context.Background(), &r)
	if err != nil {
		t.Fatalf("seeding request: %v", err)
	}
	return id
}

func TestSubmitPitchBumpsOpenRequestToInReview(t *testing.T) {
	f := newPitchServiceFixture()
	id := f.addRequest(t, models.Request{Title: "t", Description: "d", Category: "Other",
		CreatedBy: "owner", Status: models.StatusOpen, City: "bilaspur_cg"})

	pitch, err := f.svc.Submit(context.Background(), "helper", id, models.CreatePitchPayload{PitchText: "I can do this"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if pitch.ID == "" {
		t.Error("expected assigned pitch ID")
	}
	if pitch.Skills == nil {
		t.Error("skills must default to an empty list, not nil")
	}

	request, _ := f.requestRepo.GetByID(context.Background(), id)
	if request.Status != models.StatusInReview {
		t.Errorf("status = %q, want in_review after first pitch", request.Status)
	}
	if got := f.events.byType(EventPitchCreated); len(got) != 1 {
		t.Errorf("pitch.created events = %d, want 1", len(got))
	}

	// A later pitch must not disturb an already-advanced status.
	f.requestRepo.SetStatus(context.Background(), id, models.StatusAssigned)
	if _, err := f.svc.Submit(context.Background(), "helper2", id, models.CreatePitchPayload{PitchText: "me too"}); err != nil {
		t.Fatalf("Submit second helper: %v", err)
	}
	request, _ = f.requestRepo.GetByID(context.Background(), id)
	if request.Status != models.StatusAssigned {
		t.Errorf("status = %q, want assigned left untouched", request.Status)
	}
}

func TestSubmitPitchRejections(t *testing.T) {
	f := newPitchServiceFixture()
	id := f.addRequest(t, models.Request{Title: "t", Description: "d", Category: "Other",
		CreatedBy: "owner", Status: models.StatusOpen, City: "bilaspur_cg"})
	payload := models.CreatePitchPayload{PitchText: "pick me"}

	if _, err := f.svc.Submit(context.Background(), "owner", id, payload); !errors.Is(err, ErrOwnRequestPitch) {
		t.Errorf("err = %v, want ErrOwnRequestPitch", err)
	}
	if _, err := f.svc.Submit(context.Background(), "helper", "missing", payload); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("err = %v, want ErrRequestNotFound", err)
	}

	if _, err := f.svc.Submit(context.Background(), "helper", id, payload); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), "helper", id, payload); !errors.Is(err, ErrDuplicatePitch) {
		t.Errorf("err = %v, want ErrDuplicatePitch on second submission", err)
	}

	pitched, err := f.svc.HasPitched(context.Background(), id, "helper")
	if err != nil || !pitched {
		t.Errorf("HasPitched = (%v, %v), want (true, nil)", pitched, err)
	}
	pitched, err = f.svc.HasPitched(context.Background(), id, "stranger")
	if err != nil || pitched {
		t.Errorf("HasPitched = (%v, %v), want (false, nil)", pitched, err)
	}
}

func TestListForRequestSortsAndDecoratesHelpers(t *testing.T) {
	f := newPitchServiceFixture()
	f.userRepo.users["h1"] = &models.User{UID: "h1", Name: "Hank", PhotoURL: "https://p/h1.jpg"}
	id := f.addRequest(t, models.Request{Title: "t", Description: "d", Category: "Other",
		CreatedBy: "owner", Status: models.StatusInReview, City: "bilaspur_cg"})

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.pitchRepo.Create(context.Background(), &models.Pitch{RequestID: id, HelperID: "h1", PitchText: "early", CreatedAt: base})
	f.pitchRepo.Create(context.Background(), &models.Pitch{RequestID: id, HelperID: "h2", PitchText: "late", CreatedAt: base.Add(time.Hour)})

	pitches, err := f.svc.ListForRequest(context.Background(), id)
	if err != nil {
		t.Fatalf("ListForRequest: %v", err)
	}
	if len(pitches) != 2 || pitches[0].PitchText != "late" {
		t.Fatalf("pitches = %+v, want newest first", pitches)
	}
	if pitches[1].HelperName != "Hank" || pitches[1].HelperPhoto != "https://p/h1.jpg" {
		t.Errorf("helper fields = (%q, %q), want denormalized profile", pitches[1].HelperName, pitches[1].HelperPhoto)
	}
	if pitches[0].HelperName != "Unknown User" {
		t.Errorf("helperName = %q, want Unknown User fallback", pitches[0].HelperName)
	}
}

func TestListByHelperAnnotatesRequestTitle(t *testing.T) {
	f := newPitchServiceFixture()
	id := f.addRequest(t, models.Request{Title: "Fix my fence", Description: "d", Category: "Other",
		CreatedBy: "owner", Status: models.StatusInReview, City: "bilaspur_cg"})

	f.pitchRepo.Create(context.Background(), &models.Pitch{RequestID: id, HelperID: "helper", PitchText: "a"})
	f.pitchRepo.Create(context.Background(), &models.Pitch{RequestID: "gone", HelperID: "helper", PitchText: "b"})

	pitches, err := f.svc.ListByHelper(context.Background(), "helper")
	if err != nil {
		t.Fatalf("ListByHelper: %v", err)
	}
	titles := map[string]string{}
	for _, pitch := range pitches {
		titles[pitch.RequestID] = pitch.RequestTitle
	}
	if titles[id] != "Fix my fence" {
		t.Errorf("title = %q, want parent request title", titles[id])
	}
	if titles["gone"] != "Unknown Request" {
		t.Errorf("title = %q, want Unknown Request fallback for deleted parent", titles["gone"])
	}
}

func TestWatchForRequestStreamsSnapshot(t *testing.T) {
	f := newPitchServiceFixture()
	id := f.addRequest(t, models.Request{Title: "t", Description: "d", Category: "Other",
		CreatedBy: "owner", Status: models.StatusInReview, City: "bilaspur_cg"})
	f.pitchRepo.Create(context.Background(), &models.Pitch{RequestID: id, HelperID: "h1", PitchText: "hello"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	updates, _ := f.svc.WatchForRequest(ctx, id)

	snapshot, ok := <-updates
	if !ok {
		t.Fatal("watch closed before delivering a snapshot")
	}
	if len(snapshot) != 1 || snapshot[0].PitchText != "hello" {
		t.Errorf("snapshot = %+v, want the seeded pitch", snapshot)
	}
	if _, ok := <-updates; ok {
		t.Error("expected updates channel to close after source teardown")
	}
}

func TestWithdrawPitch(t *testing.T) {
	f := newPitchServiceFixture()
	id := f.addRequest(t, models.Request{Title: "t", Description: "d", Category: "Other",
		CreatedBy: "owner", Status: models.StatusInReview, City: "bilaspur_cg"})
	pitchID, _ := f.pitchRepo.Create(context.Background(), &models.Pitch{RequestID: id, HelperID: "helper", PitchText: "a"})

	if err := f.svc.Withdraw(context.Background(), "someone-else", pitchID); !errors.Is(err, ErrForbiddenAccess) {
		t.Errorf("err = %v, want ErrForbiddenAccess", err)
	}
	if err := f.svc.Withdraw(context.Background(), "helper", pitchID); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if err := f.svc.Withdraw(context.Background(), "helper", pitchID); !errors.Is(err, ErrPitchNotFound) {
		t.Errorf("err = %v, want ErrPitchNotFound after withdrawal", err)
	}
}
