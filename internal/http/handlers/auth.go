package handlers

import (
	"net/http"
	"strings"
	"time"

	"travelog/internal/domain"
	"travelog/internal/repositories"
	"travelog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, hash, err := repositories.UserRepository{}.GetCredentials(strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "wrong email/username or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "failed to query user", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email/username or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = utils.NormalizeSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "username, email and a password of 8+ chars are required", nil)
		return
	}

	repo := repositories.UserRepository{}
	exists, err := repo.CountByEmailOrUsername(req.Email, req.Username)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to check user", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email or username already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	id, err := repo.Create(req.Name, req.Username, req.Email, string(hash))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user": gin.H{
			"id":       id,
			"name":     req.Name,
			"username": req.Username,
			"email":    req.Email,
			"role":     "user",
			"status":   "active",
		},
	})
}
