package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, username, email, role, status
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Role, &u.Status); err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, username, email, role, status
		FROM users
		WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// GetCredentials looks a user up by email or username and returns the stored
// password hash alongside the public record.
func (r UserRepository) GetCredentials(identity string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, username, email, password_hash, role, status
		FROM users
		WHERE email = ? OR username = ?
	`, identity, identity).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &hash, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return u, "", domain.NotFoundError{Resource: "user"}
	}
	return u, hash, err
}

func (r UserRepository) CountByEmailOrUsername(email, username string) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
	`, email, username).Scan(&n)
	return n, err
}

func (r UserRepository) Create(name, username, email, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'user', 'active', NOW(), NOW())
	`, name, username, email, passwordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) Update(u models.User) error {
	res, err := r.db().Exec(`
		UPDATE users SET name=?, username=?, email=?, role=?, status=?, updated_at=NOW()
		WHERE id=?
	`, u.Name, u.Username, u.Email, u.Role, u.Status, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
