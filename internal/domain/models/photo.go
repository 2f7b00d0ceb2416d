package models

// Photo is an uploaded picture attached to a trip, optionally pinned to a step.
type Photo struct {
	ID      int64  `json:"id"`
	TripID  int64  `json:"trip_id"`
	StepID  *int64 `json:"step_id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	TakenAt string `json:"taken_at"`
}
