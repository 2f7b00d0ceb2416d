package handlers

import (
	"net/http"
	"strings"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/http/middleware"
	"travelog/internal/repositories"
	"travelog/internal/utils"

	"github.com/gin-gonic/gin"
)

type tripRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	CoverPhotoURL string `json:"cover_photo_url"`
	Status        string `json:"status"`
}

func (r *tripRequest) normalize() error {
	r.Title = utils.NormalizeSpace(r.Title)
	if r.Title == "" {
		return domain.ValidationError{Field: "title", Msg: "required"}
	}
	if strings.TrimSpace(r.Status) == "" {
		r.Status = domain.TripPlanned
	}
	if !domain.ValidTripStatus(r.Status) {
		return domain.ValidationError{Field: "status", Msg: "must be planned, active or finished"}
	}
	if r.StartDate != "" {
		if _, err := utils.ParseDate(r.StartDate); err != nil {
			return domain.ValidationError{Field: "start_date", Msg: "expected YYYY-MM-DD"}
		}
	}
	if r.EndDate != "" {
		if _, err := utils.ParseDate(r.EndDate); err != nil {
			return domain.ValidationError{Field: "end_date", Msg: "expected YYYY-MM-DD"}
		}
	}
	if r.StartDate != "" && r.EndDate != "" && r.EndDate < r.StartDate {
		return domain.ValidationError{Field: "end_date", Msg: "before start_date"}
	}
	return nil
}

// GET /api/trips
func GetTrips(c *gin.Context) {
	trips, err := repositories.TripRepository{}.ListForUser(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, id) {
		return
	}
	trip, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		RespondDomainError(c, err)
		return
	}

	t := models.Trip{
		OwnerID:       middleware.CurrentUserID(c),
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CoverPhotoURL: strings.TrimSpace(req.CoverPhotoURL),
		Status:        req.Status,
	}

	id, err := repositories.TripRepository{}.Create(t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id
// Any member may edit.
func UpdateTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, id) {
		return
	}

	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.normalize(); err != nil {
		RespondDomainError(c, err)
		return
	}

	existing, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	t := models.Trip{
		ID:            id,
		OwnerID:       existing.OwnerID,
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CoverPhotoURL: strings.TrimSpace(req.CoverPhotoURL),
		Status:        req.Status,
	}
	if err := (repositories.TripRepository{}).Update(t); err != nil {
		RespondDomainError(c, err)
		return
	}
	if diaryCache != nil {
		diaryCache.Invalidate(id)
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/trips/:id
// Owner only.
func DeleteTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripOwner(c, id) {
		return
	}
	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	if diaryCache != nil {
		diaryCache.Invalidate(id)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
