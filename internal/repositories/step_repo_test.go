package repositories

import (
	"testing"

	"travelog/internal/domain"
	"travelog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRepositoryListByTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "trip_id", "name", "location", "lat", "lng", "arrived_at", "departed_at", "notes", "ordinal"}).
		AddRow(1, 42, "Grenoble", "France", 45.18, 5.72, "2025-06-01", "2025-06-03", "", 1).
		AddRow(2, 42, "Galibier", "", 45.06, 6.40, "2025-06-03", nil, "Snow", 2)

	mock.ExpectQuery("SELECT id, trip_id, name").WithArgs(int64(42)).WillReturnRows(rows)

	steps, err := StepRepository{DB: db}.ListByTrip(42)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	require.NotNil(t, steps[0].DepartedAt)
	assert.Equal(t, "2025-06-03", *steps[0].DepartedAt)
	assert.Nil(t, steps[1].DepartedAt, "open-ended stop keeps departed_at nil")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStepRepositoryCreateStoresNilDeparture(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO steps").
		WithArgs(int64(42), "Galibier", "", 45.06, 6.40, "2025-06-03", nil, "Snow", 2).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := StepRepository{DB: db}.Create(models.Step{
		TripID: 42, Name: "Galibier", Lat: 45.06, Lng: 6.40,
		ArrivedAt: "2025-06-03", Notes: "Snow", Ordinal: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStepRepositoryUpdateMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE steps").WillReturnResult(sqlmock.NewResult(0, 0))

	err = StepRepository{DB: db}.Update(models.Step{ID: 99, TripID: 42, Name: "x", ArrivedAt: "2025-01-01"})
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
