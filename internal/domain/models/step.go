package models

// Step is a single waypoint visited during a trip.
// DepartedAt is nil while the traveller is still at this stop.
type Step struct {
	ID         int64   `json:"id"`
	TripID     int64   `json:"trip_id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ArrivedAt  string  `json:"arrived_at"`
	DepartedAt *string `json:"departed_at"`
	Notes      string  `json:"notes"`
	Ordinal    int     `json:"ordinal"`
}

// RoutePoint is one recorded GPS sample along a trip.
type RoutePoint struct {
	ID         int64   `json:"id"`
	TripID     int64   `json:"trip_id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	RecordedAt string  `json:"recorded_at"`
}
