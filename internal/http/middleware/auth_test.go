package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authTestSecret = []byte("auth-test-secret")

func signToken(t *testing.T, secret []byte, userID int64, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     exp.Unix(),
	})
	raw, err := token.SignedString(secret)
	require.NoError(t, err)
	return raw
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(authTestSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   CurrentUserID(c),
			"role": CurrentUserRole(c),
		})
	})
	r.DELETE("/admin-only", RequireAuth(authTestSecret), RequireRoles("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func authGet(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := authTestRouter()
	w := authGet(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")
}

func TestRequireAuthRejectsMalformedToken(t *testing.T) {
	r := authTestRouter()
	w := authGet(r, http.MethodGet, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired")
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, authTestSecret, 7, "user", time.Now().Add(-time.Hour))
	w := authGet(r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, []byte("some-other-secret"), 7, "user", time.Now().Add(time.Hour))
	w := authGet(r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, authTestSecret, 7, "user", time.Now().Add(time.Hour))
	w := authGet(r, http.MethodGet, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestRequireRolesForbidsNonAdmin(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, authTestSecret, 7, "user", time.Now().Add(time.Hour))
	w := authGet(r, http.MethodDelete, "/admin-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, authTestSecret, 1, "admin", time.Now().Add(time.Hour))
	w := authGet(r, http.MethodDelete, "/admin-only", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
