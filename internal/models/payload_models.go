package models

import "strings"

// CreateRequestPayload is the request body for posting a new help request.
type CreateRequestPayload struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Payment     float64 `json:"payment" binding:"required,gt=0"`
	City        string  `json:"city,omitempty"` // Defaults to the caller's active city
	Area        string  `json:"area,omitempty"`
	Society     string  `json:"society,omitempty"`
}

// CreatePitchPayload is the request body for submitting a pitch.
type CreatePitchPayload struct {
	PitchText string   `json:"pitchText" binding:"required"`
	Skills    []string `json:"skills,omitempty"`
}

// CompleteRequestPayload is the request body for marking a request completed.
// HelperID, when set, names the user whose helpsGiven counter is incremented.
type CompleteRequestPayload struct {
	HelperID string `json:"helperId,omitempty"`
}

// UpdateProfilePayload is the request body for partial profile updates.
// Pointers distinguish "not provided" from explicit empty values.
type UpdateProfilePayload struct {
	Name       *string   `json:"name,omitempty"`
	Skills     *[]string `json:"skills,omitempty"` // Pointer so skills can be cleared with an empty list
	ActiveCity *string   `json:"activeCity,omitempty"`
}

// LinkPasswordPayload is the request body for adding a password credential
// to an OAuth-only account.
type LinkPasswordPayload struct {
	Password string `json:"password" binding:"required,min=6"`
}

// RequestFilter holds the in-memory filters applied to a request list after
// the city-scoped query has delivered its result set. Substring search runs
// against title and description.
type RequestFilter struct {
	Search   string
	Category string
	Status   RequestStatus
}

// Matches reports whether the request passes the filter.
func (f RequestFilter) Matches(r *Request) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Search != "" {
		if !containsFold(r.Title, f.Search) && !containsFold(r.Description, f.Search) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
