package repositories

import (
	"testing"

	"travelog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseRepositoryCreateWritesParticipantsInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO expenses").
		WithArgs(int64(42), "Fuel", int64(8050), "EUR", int64(1), "transport", "2025-06-02").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO expense_participants").
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO expense_participants").
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := ExpenseRepository{DB: db}.Create(models.Expense{
		TripID: 42, Title: "Fuel", Amount: 8050, Currency: "EUR",
		PayerID: 1, Category: "transport", SpentAt: "2025-06-02",
		Participants: []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryCreateRollsBackOnParticipantError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO expenses").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO expense_participants").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = ExpenseRepository{DB: db}.Create(models.Expense{
		TripID: 42, Title: "Fuel", Amount: 8050, Currency: "EUR",
		PayerID: 1, Participants: []int64{1},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryGetByIDLoadsParticipants(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, trip_id, title, amount").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "title", "amount", "currency", "payer_id", "category", "spent_at"}).
			AddRow(5, 42, "Fuel", 8050, "EUR", 1, "transport", "2025-06-02"))
	mock.ExpectQuery("SELECT user_id FROM expense_participants").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2))

	e, err := ExpenseRepository{DB: db}.GetByID(5)
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.TripID)
	assert.Equal(t, []int64{1, 2}, e.Participants)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryListByTripLoadsParticipants(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, trip_id, title, amount").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "title", "amount", "currency", "payer_id", "category", "spent_at"}).
			AddRow(5, 42, "Fuel", 8050, "EUR", 1, "transport", "2025-06-02"))
	mock.ExpectQuery("SELECT user_id FROM expense_participants").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2))

	expenses, err := ExpenseRepository{DB: db}.ListByTrip(42)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, []int64{1, 2}, expenses[0].Participants)
	require.NoError(t, mock.ExpectationsWereMet())
}
