package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	intdb "travelog/internal/db"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// TripWithStats pairs a trip with its listing aggregates.
type TripWithStats struct {
	Trip  models.Trip      `json:"trip"`
	Stats models.TripStats `json:"stats"`
}

// ListForUser returns trips the user owns or is a member of, newest first,
// with per-trip step/photo counts and expense totals.
func (r TripRepository) ListForUser(userID int64) ([]TripWithStats, error) {
	rows, err := r.db().Query(`
		SELECT t.id, t.owner_id, t.title, COALESCE(t.description,''),
		       COALESCE(t.start_date,''), COALESCE(t.end_date,''),
		       COALESCE(t.cover_photo_url,''), t.status,
		       COALESCE(t.created_at,''), COALESCE(t.updated_at,''),
		       (SELECT COUNT(*) FROM steps s WHERE s.trip_id = t.id),
		       (SELECT COUNT(*) FROM photos p WHERE p.trip_id = t.id),
		       (SELECT COALESCE(SUM(e.amount),0) FROM expenses e WHERE e.trip_id = t.id)
		FROM trips t
		JOIN trip_members m ON m.trip_id = t.id
		WHERE m.user_id = ?
		ORDER BY t.start_date DESC, t.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TripWithStats{}
	for rows.Next() {
		var rec TripWithStats
		t := &rec.Trip
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Title, &t.Description,
			&t.StartDate, &t.EndDate,
			&t.CoverPhotoURL, &t.Status,
			&t.CreatedAt, &t.UpdatedAt,
			&rec.Stats.StepCount, &rec.Stats.PhotoCount, &rec.Stats.ExpenseTotal,
		); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	var t models.Trip
	err := r.db().QueryRow(`
		SELECT id, owner_id, title, COALESCE(description,''),
		       COALESCE(start_date,''), COALESCE(end_date,''),
		       COALESCE(cover_photo_url,''), status,
		       COALESCE(created_at,''), COALESCE(updated_at,'')
		FROM trips
		WHERE id = ?
	`, id).Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description,
		&t.StartDate, &t.EndDate,
		&t.CoverPhotoURL, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

// Create inserts the trip and registers the owner as a member in one tx.
func (r TripRepository) Create(t models.Trip) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO trips (owner_id, title, description, start_date, end_date, cover_photo_url, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, t.OwnerID, t.Title, t.Description,
		intdb.NullIfEmpty(t.StartDate), intdb.NullIfEmpty(t.EndDate),
		intdb.NullIfEmpty(t.CoverPhotoURL), t.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`
		INSERT INTO trip_members (trip_id, user_id, role) VALUES (?, ?, 'owner')
	`, id, t.OwnerID); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

func (r TripRepository) Update(t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips SET title=?, description=?, start_date=?, end_date=?, cover_photo_url=?, status=?, updated_at=NOW()
		WHERE id=?
	`, t.Title, t.Description,
		intdb.NullIfEmpty(t.StartDate), intdb.NullIfEmpty(t.EndDate),
		intdb.NullIfEmpty(t.CoverPhotoURL), t.Status, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// Touch bumps updated_at; used by mutations on child records so diary caches
// and clients see the trip as changed.
func (r TripRepository) Touch(id int64) error {
	_, err := r.db().Exec(`UPDATE trips SET updated_at=NOW() WHERE id=?`, id)
	return err
}
