package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type DesignTokenRepository struct {
	DB *sql.DB
}

func (r DesignTokenRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DesignTokenRepository) Get(userID int64) (models.DesignToken, error) {
	var t models.DesignToken
	err := r.db().QueryRow(`
		SELECT user_id, access_token, refresh_token, expires_at
		FROM design_tokens
		WHERE user_id = ?
	`, userID).Scan(&t.UserID, &t.AccessToken, &t.RefreshToken, &t.ExpiresAt)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "design token"}
	}
	return t, err
}

// Save upserts the token pair; called after the initial grant and after every
// refresh (the platform rotates refresh tokens).
func (r DesignTokenRepository) Save(t models.DesignToken) error {
	_, err := r.db().Exec(`
		INSERT INTO design_tokens (user_id, access_token, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE access_token=VALUES(access_token), refresh_token=VALUES(refresh_token), expires_at=VALUES(expires_at)
	`, t.UserID, t.AccessToken, t.RefreshToken, t.ExpiresAt)
	return err
}
