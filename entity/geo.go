package entity

// Location is a resolved geocoding candidate.
type Location struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
	State       string  `json:"state,omitempty"`
	City        string  `json:"city,omitempty"`
}
