package repositories

import (
	"database/sql"
	"strings"

	intconfig "travelog/internal/config"
	"travelog/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) ListByTrip(tripID int64) ([]models.RoutePoint, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, lat, lng, COALESCE(recorded_at,'')
		FROM route_points
		WHERE trip_id = ?
		ORDER BY recorded_at ASC, id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoutePoint{}
	for rows.Next() {
		var p models.RoutePoint
		if err := rows.Scan(&p.ID, &p.TripID, &p.Lat, &p.Lng, &p.RecordedAt); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AppendBatch inserts recorded samples in one multi-row statement.
func (r RouteRepository) AppendBatch(tripID int64, points []models.RoutePoint) error {
	if len(points) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO route_points (trip_id, lat, lng, recorded_at) VALUES `)
	args := make([]any, 0, len(points)*4)
	for i, p := range points {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?)")
		args = append(args, tripID, p.Lat, p.Lng, p.RecordedAt)
	}

	_, err := r.db().Exec(sb.String(), args...)
	return err
}

func (r RouteRepository) Clear(tripID int64) error {
	_, err := r.db().Exec(`DELETE FROM route_points WHERE trip_id=?`, tripID)
	return err
}
