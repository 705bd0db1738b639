package models

import "time"

// Pitch represents an offer to fulfill a request.
// At most one pitch may exist per (RequestID, HelperID) pair; the service
// layer enforces this with a read-before-write check.
type Pitch struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	RequestID string    `json:"requestId" firestore:"requestId"`
	HelperID  string    `json:"helperId" firestore:"helperId"`
	PitchText string    `json:"pitchText" firestore:"pitchText"`
	Skills    []string  `json:"skills" firestore:"skills"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`

	// Denormalized display fields, populated when listing. Never persisted.
	HelperName   string `json:"helperName,omitempty" firestore:"-"`
	HelperPhoto  string `json:"helperPhoto,omitempty" firestore:"-"`
	RequestTitle string `json:"requestTitle,omitempty" firestore:"-"`
}
