package models

// Trip is the top-level diary aggregate.
type Trip struct {
	ID            int64  `json:"id"`
	OwnerID       int64  `json:"owner_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	CoverPhotoURL string `json:"cover_photo_url"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// TripMember links a user to a trip. Role is "owner" or "member".
type TripMember struct {
	TripID   int64  `json:"trip_id"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TripStats carries per-trip aggregates returned alongside listings.
type TripStats struct {
	StepCount    int   `json:"step_count"`
	PhotoCount   int   `json:"photo_count"`
	ExpenseTotal int64 `json:"expense_total"`
}
