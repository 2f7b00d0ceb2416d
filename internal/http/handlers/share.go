package handlers

import (
	"net/http"
	"strings"

	"travelog/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/trips/:id/share
func GetShareLink(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	link, err := repositories.ShareLinkRepository{}.GetByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// POST /api/trips/:id/share
// Creates or rotates the share token. Rotating revokes the previous link.
func RotateShareLink(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripOwner(c, tripID) {
		return
	}

	token := uuid.NewString()
	if err := (repositories.ShareLinkRepository{}).Rotate(tripID, token); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"trip_id": tripID,
		"token":   token,
	})
}

// GET /api/shared/:token
// Public read-only diary. No auth.
func GetSharedDiary(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		RespondError(c, http.StatusBadRequest, "invalid token", nil)
		return
	}

	link, err := repositories.ShareLinkRepository{}.GetByToken(token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	view, err := diaryService(c).View(link.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// Balances are between members; the public view omits them.
	view.Balances = nil
	view.Expenses = nil
	c.JSON(http.StatusOK, view)
}
