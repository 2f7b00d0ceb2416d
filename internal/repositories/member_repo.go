package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type MemberRepository struct {
	DB *sql.DB
}

func (r MemberRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r MemberRepository) ListByTrip(tripID int64) ([]models.TripMember, error) {
	rows, err := r.db().Query(`
		SELECT m.trip_id, m.user_id, u.name, u.username, m.role
		FROM trip_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.trip_id = ?
		ORDER BY m.role = 'owner' DESC, u.id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripMember{}
	for rows.Next() {
		var m models.TripMember
		if err := rows.Scan(&m.TripID, &m.UserID, &m.Name, &m.Username, &m.Role); err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MemberRepository) IsMember(tripID, userID int64) (bool, error) {
	var one int
	err := r.db().QueryRow(`
		SELECT 1 FROM trip_members WHERE trip_id = ? AND user_id = ?
	`, tripID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r MemberRepository) Add(tripID, userID int64) error {
	ok, err := r.IsMember(tripID, userID)
	if err != nil {
		return err
	}
	if ok {
		return domain.ConflictError{Resource: "member", Msg: "already on trip"}
	}
	_, err = r.db().Exec(`
		INSERT INTO trip_members (trip_id, user_id, role) VALUES (?, ?, 'member')
	`, tripID, userID)
	return err
}

// Remove drops a non-owner member. The owner row is protected.
func (r MemberRepository) Remove(tripID, userID int64) error {
	res, err := r.db().Exec(`
		DELETE FROM trip_members WHERE trip_id = ? AND user_id = ? AND role <> 'owner'
	`, tripID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "member"}
	}
	return nil
}
