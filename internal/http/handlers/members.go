package handlers

import (
	"net/http"

	"travelog/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/members
func GetTripMembers(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	members, err := repositories.MemberRepository{}.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

type addMemberRequest struct {
	UserID int64 `json:"user_id"`
}

// POST /api/trips/:id/members
// Owner adds a registered user.
func AddTripMember(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripOwner(c, tripID) {
		return
	}

	var req addMemberRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	// Must exist as a user before joining a trip.
	if _, err := (repositories.UserRepository{}).GetByID(req.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := (repositories.MemberRepository{}).Add(tripID, req.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// DELETE /api/trips/:id/members/:userId
// Owner removes a member.
func RemoveTripMember(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if !requireTripOwner(c, tripID) {
		return
	}
	if err := (repositories.MemberRepository{}).Remove(tripID, userID); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
