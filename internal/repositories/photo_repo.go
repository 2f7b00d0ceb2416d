package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	intdb "travelog/internal/db"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type PhotoRepository struct {
	DB *sql.DB
}

func (r PhotoRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PhotoRepository) ListByTrip(tripID int64) ([]models.Photo, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, step_id, url, COALESCE(caption,''), COALESCE(taken_at,'')
		FROM photos
		WHERE trip_id = ?
		ORDER BY taken_at ASC, id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		var stepID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.TripID, &stepID, &p.URL, &p.Caption, &p.TakenAt); err != nil {
			return out, err
		}
		if stepID.Valid {
			v := stepID.Int64
			p.StepID = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PhotoRepository) GetByID(id int64) (models.Photo, error) {
	var p models.Photo
	var stepID sql.NullInt64
	err := r.db().QueryRow(`
		SELECT id, trip_id, step_id, url, COALESCE(caption,''), COALESCE(taken_at,'')
		FROM photos
		WHERE id = ?
	`, id).Scan(&p.ID, &p.TripID, &stepID, &p.URL, &p.Caption, &p.TakenAt)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "photo"}
	}
	if stepID.Valid {
		v := stepID.Int64
		p.StepID = &v
	}
	return p, err
}

func (r PhotoRepository) Create(p models.Photo) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO photos (trip_id, step_id, url, caption, taken_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.TripID, nullableInt(p.StepID), p.URL, p.Caption, intdb.NullIfEmpty(p.TakenAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PhotoRepository) Update(p models.Photo) error {
	res, err := r.db().Exec(`
		UPDATE photos SET step_id=?, url=?, caption=?, taken_at=?
		WHERE id=? AND trip_id=?
	`, nullableInt(p.StepID), p.URL, p.Caption, intdb.NullIfEmpty(p.TakenAt), p.ID, p.TripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "photo"}
	}
	return nil
}

func (r PhotoRepository) Delete(tripID, id int64) error {
	res, err := r.db().Exec(`DELETE FROM photos WHERE id=? AND trip_id=?`, id, tripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "photo"}
	}
	return nil
}

func nullableInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
