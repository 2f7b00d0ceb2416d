package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTripExpenseDedupesParticipants(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectQuery("SELECT 1 FROM trip_members").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(memberRows())
	mock.ExpectQuery("SELECT 1 FROM trip_members").
		WithArgs(int64(42), int64(8)).
		WillReturnRows(memberRows())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO expenses").
		WithArgs(int64(42), "Fuel", int64(9000), "EUR", int64(7), "", "2025-06-02").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO expense_participants").
		WithArgs(int64(5), int64(8)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectExec("UPDATE trips SET updated_at").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"title":"Fuel","amount":9000,"currency":"EUR","spent_at":"2025-06-02","participants":[8,8,8]}`
	w := doJSON(r, http.MethodPost, "/api/trips/42/expenses", bearerFor(t, 7, "user"), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"participants":[8]`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTripExpenseRejectsNonMemberParticipant(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectQuery("SELECT 1 FROM trip_members").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(memberRows())
	mock.ExpectQuery("SELECT 1 FROM trip_members").
		WithArgs(int64(42), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	body := `{"title":"Fuel","amount":9000,"currency":"EUR","participants":[99]}`
	w := doJSON(r, http.MethodPost, "/api/trips/42/expenses", bearerFor(t, 7, "user"), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "non-member")
	require.NoError(t, mock.ExpectationsWereMet())
}
