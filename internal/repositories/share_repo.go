package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type ShareLinkRepository struct {
	DB *sql.DB
}

func (r ShareLinkRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ShareLinkRepository) GetByTrip(tripID int64) (models.ShareLink, error) {
	var s models.ShareLink
	err := r.db().QueryRow(`
		SELECT trip_id, token, COALESCE(created_at,'') FROM share_links WHERE trip_id = ?
	`, tripID).Scan(&s.TripID, &s.Token, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "share link"}
	}
	return s, err
}

func (r ShareLinkRepository) GetByToken(token string) (models.ShareLink, error) {
	var s models.ShareLink
	err := r.db().QueryRow(`
		SELECT trip_id, token, COALESCE(created_at,'') FROM share_links WHERE token = ?
	`, token).Scan(&s.TripID, &s.Token, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "share link"}
	}
	return s, err
}

// Rotate replaces any existing link for the trip with the new token. The old
// token stops resolving immediately.
func (r ShareLinkRepository) Rotate(tripID int64, token string) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM share_links WHERE trip_id=?`, tripID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO share_links (trip_id, token, created_at) VALUES (?, ?, NOW())
	`, tripID, token); err != nil {
		return err
	}
	return tx.Commit()
}
