package models

// Expense is a single trip expense. Amount is in minor units (cents).
// Participants is the subset of trip members the amount is split across;
// empty means all members at the time of the query.
type Expense struct {
	ID           int64   `json:"id"`
	TripID       int64   `json:"trip_id"`
	Title        string  `json:"title"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	PayerID      int64   `json:"payer_id"`
	Category     string  `json:"category"`
	SpentAt      string  `json:"spent_at"`
	Participants []int64 `json:"participants"`
}

// Balance is a per-member settlement position. Net = Paid - Owed;
// positive means the member is owed money.
type Balance struct {
	UserID int64 `json:"user_id"`
	Paid   int64 `json:"paid"`
	Owed   int64 `json:"owed"`
	Net    int64 `json:"net"`
}

// Transfer is one suggested repayment.
type Transfer struct {
	FromUserID int64 `json:"from_user_id"`
	ToUserID   int64 `json:"to_user_id"`
	Amount     int64 `json:"amount"`
}
