package models

import "time"

// RequestStatus is the lifecycle state of a help request.
type RequestStatus string

const (
	StatusOpen      RequestStatus = "open"
	StatusInReview  RequestStatus = "in_review"
	StatusAssigned  RequestStatus = "assigned"
	StatusCompleted RequestStatus = "completed"
)

// statusTransitions maps a status to the set of statuses it may move to.
// A request never returns to "open" and "completed" is terminal.
var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusOpen:      {StatusInReview, StatusAssigned, StatusCompleted},
	StatusInReview:  {StatusAssigned, StatusCompleted},
	StatusAssigned:  {StatusCompleted},
	StatusCompleted: {},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RequestStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known request status.
func IsValidStatus(s RequestStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// Request represents a posted ask for help, owned by its creator.
type Request struct {
	ID          string        `json:"id" firestore:"-"` // Document ID, auto-generated
	Title       string        `json:"title" firestore:"title"`
	Description string        `json:"description" firestore:"description"`
	Category    string        `json:"category" firestore:"category"`
	Payment     float64       `json:"payment" firestore:"payment"`
	CreatedBy   string        `json:"createdBy" firestore:"createdBy"`
	Status      RequestStatus `json:"status" firestore:"status"`
	City        string        `json:"city" firestore:"city"`
	Area        string        `json:"area,omitempty" firestore:"area,omitempty"`
	Society     string        `json:"society,omitempty" firestore:"society,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`

	// Denormalized creator display fields, populated from the "users"
	// collection when listing. Never written back to Firestore.
	CreatorName  string `json:"creatorName,omitempty" firestore:"-"`
	CreatorPhoto string `json:"creatorPhoto,omitempty" firestore:"-"`
}

// Categories a request can be posted under. Earlier product iterations used
// a different set; the seeder treats documents carrying retired values as
// stale fixtures.
var RequestCategories = []string{
	"Technology",
	"Design",
	"Writing",
	"Marketing",
	"Finance",
	"Legal",
	"Other",
}

// IsValidCategory reports whether c is a currently accepted category.
func IsValidCategory(c string) bool {
	for _, known := range RequestCategories {
		if known == c {
			return true
		}
	}
	return false
}
