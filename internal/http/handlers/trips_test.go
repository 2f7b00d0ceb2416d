package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "travelog/internal/config"
	"travelog/internal/http/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHandlerTest points the shared DB handle at a sqlmock connection and
// builds a router with the routes these tests hit.
func newHandlerTest(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)
	intconfig.DB = db

	cleanup := Init(intconfig.Env{
		JWTSecret:       "handler-test-secret",
		DiaryCacheTTL:   time.Minute,
		DiaryCacheSweep: time.Minute,
	})
	t.Cleanup(func() {
		cleanup()
		db.Close()
		intconfig.DB = nil
	})

	r := gin.New()
	auth := middleware.RequireAuth(jwtSecret)
	r.PUT("/api/trips/:id", auth, UpdateTrip)
	r.DELETE("/api/trips/:id", auth, DeleteTrip)
	r.POST("/api/trips/:id/expenses", auth, CreateTripExpense)
	return mock, r
}

func bearerFor(t *testing.T, userID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(jwtSecret)
	require.NoError(t, err)
	return "Bearer " + raw
}

func doJSON(r *gin.Engine, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tripRows(ownerID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "description", "start_date", "end_date",
		"cover_photo_url", "status", "created_at", "updated_at",
	}).AddRow(42, ownerID, "Alps by Van", "", "2025-06-01", "2025-06-10", "", "active",
		"2025-05-01 10:00:00", "2025-05-01 10:00:00")
}

func memberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"1"}).AddRow(1)
}

func TestDeleteTripAllowsOwner(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectExec("DELETE FROM trips").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(r, http.MethodDelete, "/api/trips/42", bearerFor(t, 7, "user"), "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTripForbidsNonOwnerMember(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))

	w := doJSON(r, http.MethodDelete, "/api/trips/42", bearerFor(t, 8, "user"), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only the trip owner")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTripAllowsAdmin(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectExec("DELETE FROM trips").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(r, http.MethodDelete, "/api/trips/42", bearerFor(t, 99, "admin"), "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTripAllowsNonOwnerMember(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectQuery("SELECT 1 FROM trip_members").
		WithArgs(int64(42), int64(8)).
		WillReturnRows(memberRows())
	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectExec("UPDATE trips SET title").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"title":"Alps by Van, extended","status":"active"}`
	w := doJSON(r, http.MethodPut, "/api/trips/42", bearerFor(t, 8, "user"), body)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTripForbidsNonMember(t *testing.T) {
	mock, r := newHandlerTest(t)

	mock.ExpectQuery("SELECT id, owner_id, title").
		WithArgs(int64(42)).
		WillReturnRows(tripRows(7))
	mock.ExpectQuery("SELECT 1 FROM trip_members").
		WithArgs(int64(42), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	body := `{"title":"Hijacked","status":"active"}`
	w := doJSON(r, http.MethodPut, "/api/trips/42", bearerFor(t, 9, "user"), body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not a member")
	require.NoError(t, mock.ExpectationsWereMet())
}
