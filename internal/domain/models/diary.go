package models

// ShareLink exposes a trip diary read-only without auth.
type ShareLink struct {
	TripID    int64  `json:"trip_id"`
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
}

// DesignToken stores a user's OAuth credentials for the design platform.
// ExpiresAt is a unix timestamp for the access token.
type DesignToken struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}
