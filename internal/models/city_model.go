package models

// City is a locality where Assistix operates. Requests are scoped to the
// poster's active city and users pick one from this fixed list.
type City struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// ActiveCities is the fixed set of supported localities.
var ActiveCities = []City{
	{ID: "bilaspur_cg", Name: "Bilaspur", DisplayName: "Bilaspur, C.G"},
	{ID: "koni_bilaspur", Name: "Koni", DisplayName: "Koni, Bilaspur"},
}

// CityByID returns the city with the given ID, or false if unknown.
func CityByID(id string) (City, bool) {
	for _, c := range ActiveCities {
		if c.ID == id {
			return c, true
		}
	}
	return City{}, false
}

// IsValidCity reports whether id names a supported city.
func IsValidCity(id string) bool {
	_, ok := CityByID(id)
	return ok
}
