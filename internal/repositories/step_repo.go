package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type StepRepository struct {
	DB *sql.DB
}

func (r StepRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StepRepository) ListByTrip(tripID int64) ([]models.Step, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, name, COALESCE(location,''), lat, lng,
		       COALESCE(arrived_at,''), departed_at, COALESCE(notes,''), ordinal
		FROM steps
		WHERE trip_id = ?
		ORDER BY ordinal ASC, arrived_at ASC, id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Step{}
	for rows.Next() {
		var s models.Step
		var departed sql.NullString
		if err := rows.Scan(
			&s.ID, &s.TripID, &s.Name, &s.Location, &s.Lat, &s.Lng,
			&s.ArrivedAt, &departed, &s.Notes, &s.Ordinal,
		); err != nil {
			return out, err
		}
		if departed.Valid {
			v := departed.String
			s.DepartedAt = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r StepRepository) GetByID(id int64) (models.Step, error) {
	var s models.Step
	var departed sql.NullString
	err := r.db().QueryRow(`
		SELECT id, trip_id, name, COALESCE(location,''), lat, lng,
		       COALESCE(arrived_at,''), departed_at, COALESCE(notes,''), ordinal
		FROM steps
		WHERE id = ?
	`, id).Scan(
		&s.ID, &s.TripID, &s.Name, &s.Location, &s.Lat, &s.Lng,
		&s.ArrivedAt, &departed, &s.Notes, &s.Ordinal,
	)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "step"}
	}
	if departed.Valid {
		v := departed.String
		s.DepartedAt = &v
	}
	return s, err
}

func (r StepRepository) Create(s models.Step) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO steps (trip_id, name, location, lat, lng, arrived_at, departed_at, notes, ordinal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.TripID, s.Name, s.Location, s.Lat, s.Lng, s.ArrivedAt, nullableString(s.DepartedAt), s.Notes, s.Ordinal)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r StepRepository) Update(s models.Step) error {
	res, err := r.db().Exec(`
		UPDATE steps SET name=?, location=?, lat=?, lng=?, arrived_at=?, departed_at=?, notes=?, ordinal=?
		WHERE id=? AND trip_id=?
	`, s.Name, s.Location, s.Lat, s.Lng, s.ArrivedAt, nullableString(s.DepartedAt), s.Notes, s.Ordinal, s.ID, s.TripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "step"}
	}
	return nil
}

func (r StepRepository) Delete(tripID, id int64) error {
	res, err := r.db().Exec(`DELETE FROM steps WHERE id=? AND trip_id=?`, id, tripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "step"}
	}
	return nil
}

func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
