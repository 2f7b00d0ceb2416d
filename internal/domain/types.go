package domain

// ID is used across domain entities.
type ID int64

// TripStatus values accepted by the API.
const (
	TripPlanned  = "planned"
	TripActive   = "active"
	TripFinished = "finished"
)

// ValidTripStatus reports whether s is one of the accepted trip states.
func ValidTripStatus(s string) bool {
	switch s {
	case TripPlanned, TripActive, TripFinished:
		return true
	}
	return false
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
