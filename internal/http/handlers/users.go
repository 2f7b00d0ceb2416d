package handlers

import (
	"net/http"
	"strings"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/http/middleware"
	"travelog/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func GetUsers(c *gin.Context) {
	users, err := repositories.UserRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// PUT /api/users/:id
// Self or admin. Role/status changes are admin-only.
func UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	isAdmin := middleware.CurrentUserRole(c) == "admin"
	if !isAdmin && middleware.CurrentUserID(c) != id {
		RespondDomainError(c, domain.ForbiddenError{Msg: "may only edit your own account"})
		return
	}

	var req updateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	u := models.User{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Role:     existing.Role,
		Status:   existing.Status,
	}
	if u.Username == "" || u.Email == "" {
		RespondDomainError(c, domain.ValidationError{Msg: "username and email required"})
		return
	}
	if isAdmin {
		if strings.TrimSpace(req.Role) != "" {
			u.Role = strings.TrimSpace(req.Role)
		}
		if strings.TrimSpace(req.Status) != "" {
			u.Status = strings.TrimSpace(req.Status)
		}
	}

	if err := (repositories.UserRepository{}).Update(u); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
// Admin only, enforced by route middleware.
func DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := (repositories.UserRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
