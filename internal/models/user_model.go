package models

import "time"

// User represents a user profile in the system.
// The document ID in the "users" collection is the Firebase Auth UID.
type User struct {
	UID         string    `json:"uid" firestore:"-"` // Firebase Auth UID, used as the document ID
	Name        string    `json:"name" firestore:"name"`
	Email       string    `json:"email" firestore:"email"`
	PhotoURL    string    `json:"photoURL" firestore:"photoURL"`
	Skills      []string  `json:"skills" firestore:"skills"`
	HelpsGiven  int       `json:"helpsGiven" firestore:"helpsGiven"`
	ActiveCity  string    `json:"activeCity,omitempty" firestore:"activeCity,omitempty"`
	HasPassword bool      `json:"hasPassword,omitempty" firestore:"hasPassword,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// PublicProfile is the subset of a user profile exposed to other users,
// e.g. when rendering the creator of a request or the helper behind a pitch.
type PublicProfile struct {
	UID        string   `json:"uid"`
	Name       string   `json:"name"`
	PhotoURL   string   `json:"photoURL"`
	Skills     []string `json:"skills"`
	HelpsGiven int      `json:"helpsGiven"`
}

// Public returns the shareable view of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		UID:        u.UID,
		Name:       u.Name,
		PhotoURL:   u.PhotoURL,
		Skills:     u.Skills,
		HelpsGiven: u.HelpsGiven,
	}
}

// NeedsOnboarding reports whether the profile is still missing the fields
// collected during onboarding. Currently that is only the active city.
func (u *User) NeedsOnboarding() bool {
	return u.ActiveCity == ""
}
