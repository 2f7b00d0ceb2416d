package repositories

import (
	"testing"

	"travelog/internal/domain"
	"travelog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripRepositoryCreateRegistersOwnerAsMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WithArgs(int64(7), "Alps by Van", "Two weeks around the Alps",
			"2025-06-01", "2025-06-10", "https://cdn.example/alps.jpg", "planned").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO trip_members").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := TripRepository{DB: db}.Create(models.Trip{
		OwnerID: 7, Title: "Alps by Van", Description: "Two weeks around the Alps",
		StartDate: "2025-06-01", EndDate: "2025-06-10",
		CoverPhotoURL: "https://cdn.example/alps.jpg", Status: "planned",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryCreateStoresEmptyOptionalsAsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WithArgs(int64(7), "Someday", "", nil, nil, nil, "planned").
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectExec("INSERT INTO trip_members").
		WithArgs(int64(43), int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err = TripRepository{DB: db}.Create(models.Trip{
		OwnerID: 7, Title: "Someday", Status: "planned",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepositoryUpdateMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET title").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = TripRepository{DB: db}.Update(models.Trip{ID: 999, Title: "Ghost", Status: "planned"})
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
