package handlers

import (
	"net/http"
	"strconv"

	intconfig "travelog/internal/config"
	"travelog/internal/domain"
	"travelog/internal/http/middleware"
	"travelog/internal/repositories"
	"travelog/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	appEnv     intconfig.Env
	jwtSecret  []byte
	diaryCache *services.DiaryCache
)

// Init wires handler-level state from the environment and starts the diary
// cache sweeper. The returned func stops background work on shutdown.
func Init(env intconfig.Env) func() {
	appEnv = env
	jwtSecret = []byte(env.JWTSecret)
	diaryCache = services.NewDiaryCache(env.DiaryCacheTTL, env.DiaryCacheSweep)
	return func() { diaryCache.Close() }
}

// JWTSecret exposes the signing key to the router for auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// requireTripMember loads the trip and verifies the authenticated user can
// see it (member, owner, or admin). Writes the error response on failure.
func requireTripMember(c *gin.Context, tripID int64) (tripOK bool) {
	trip, err := repositories.TripRepository{}.GetByID(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}

	if middleware.CurrentUserRole(c) == "admin" {
		return true
	}

	userID := middleware.CurrentUserID(c)
	if trip.OwnerID == userID {
		return true
	}
	ok, err := (repositories.MemberRepository{}).IsMember(tripID, userID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if !ok {
		RespondDomainError(c, domain.ForbiddenError{Msg: "not a member of this trip"})
		return false
	}
	return true
}

// requireTripOwner additionally restricts to the trip owner (or admin).
func requireTripOwner(c *gin.Context, tripID int64) bool {
	trip, err := repositories.TripRepository{}.GetByID(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if middleware.CurrentUserRole(c) == "admin" {
		return true
	}
	if trip.OwnerID != middleware.CurrentUserID(c) {
		RespondDomainError(c, domain.ForbiddenError{Msg: "only the trip owner may do this"})
		return false
	}
	return true
}

// touchTrip bumps updated_at and drops any cached diary after a mutation.
func touchTrip(tripID int64) {
	_ = repositories.TripRepository{}.Touch(tripID)
	if diaryCache != nil {
		diaryCache.Invalidate(tripID)
	}
}
