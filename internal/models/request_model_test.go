package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RequestStatus
		want     bool
	}{
		{StatusOpen, StatusInReview, true},
		{StatusOpen, StatusAssigned, true},
		{StatusOpen, StatusCompleted, true},
		{StatusInReview, StatusAssigned, true},
		{StatusInReview, StatusCompleted, true},
		{StatusAssigned, StatusCompleted, true},

		// A request never returns to open.
		{StatusInReview, StatusOpen, false},
		{StatusAssigned, StatusOpen, false},
		{StatusCompleted, StatusOpen, false},

		// Completed is terminal, and no backward motion.
		{StatusCompleted, StatusInReview, false},
		{StatusCompleted, StatusAssigned, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusAssigned, StatusInReview, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []RequestStatus{StatusOpen, StatusInReview, StatusAssigned, StatusCompleted} {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%s) = false", s)
		}
	}
	if IsValidStatus("pending") {
		t.Error("IsValidStatus(pending) = true, want false")
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("Technology") || !IsValidCategory("Other") {
		t.Error("expected current categories to validate")
	}
	// Retired values from an earlier iteration must not validate.
	if IsValidCategory("Errands") || IsValidCategory("Household") {
		t.Error("retired categories must not validate")
	}
}

func TestRequestFilterMatches(t *testing.T) {
	request := &Request{
		Title:       "Build a React Dashboard",
		Description: "charts and live data",
		Category:    "Technology",
		Status:      StatusOpen,
	}

	tests := []struct {
		name   string
		filter RequestFilter
		want   bool
	}{
		{"empty filter", RequestFilter{}, true},
		{"title substring case-insensitive", RequestFilter{Search: "react dash"}, true},
		{"description substring", RequestFilter{Search: "LIVE DATA"}, true},
		{"no match", RequestFilter{Search: "plumbing"}, false},
		{"category match", RequestFilter{Category: "Technology"}, true},
		{"category mismatch", RequestFilter{Category: "Design"}, false},
		{"status match", RequestFilter{Status: StatusOpen}, true},
		{"status mismatch", RequestFilter{Status: StatusCompleted}, false},
		{"combined", RequestFilter{Search: "dashboard", Category: "Technology", Status: StatusOpen}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(request); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}
