package models

import "testing"

func TestNeedsOnboarding(t *testing.T) {
	user := &User{UID: "u1", Name: "Alice"}
	if !user.NeedsOnboarding() {
		t.Error("profile without an active city must need onboarding")
	}
	user.ActiveCity = "bilaspur_cg"
	if user.NeedsOnboarding() {
		t.Error("profile with an active city must not need onboarding")
	}
}

func TestPublicOmitsPrivateFields(t *testing.T) {
	user := &User{
		UID:         "u1",
		Name:        "Alice",
		Email:       "alice@example.com",
		PhotoURL:    "https://p/a.jpg",
		Skills:      []string{"Go"},
		HelpsGiven:  3,
		ActiveCity:  "bilaspur_cg",
		HasPassword: true,
	}
	public := user.Public()
	if public.UID != "u1" || public.Name != "Alice" || public.HelpsGiven != 3 {
		t.Errorf("public profile = %+v", public)
	}
}

func TestCityRoster(t *testing.T) {
	if !IsValidCity("bilaspur_cg") || !IsValidCity("koni_bilaspur") {
		t.Error("expected launch cities to validate")
	}
	if IsValidCity("") || IsValidCity("mumbai") {
		t.Error("unknown city IDs must not validate")
	}
	city, ok := CityByID("koni_bilaspur")
	if !ok || city.DisplayName != "Koni, Bilaspur" {
		t.Errorf("CityByID = (%+v, %v)", city, ok)
	}
}
