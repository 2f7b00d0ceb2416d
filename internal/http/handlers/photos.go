package handlers

import (
	"net/http"
	"strings"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/repositories"
	"travelog/internal/utils"

	"github.com/gin-gonic/gin"
)

type photoRequest struct {
	StepID  *int64 `json:"step_id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	TakenAt string `json:"taken_at"`
}

func (r *photoRequest) validate(tripID int64) error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return domain.ValidationError{Field: "url", Msg: "required"}
	}
	if r.TakenAt != "" {
		if _, err := utils.ParseDate(r.TakenAt); err != nil {
			return domain.ValidationError{Field: "taken_at", Msg: "expected YYYY-MM-DD"}
		}
	}
	if r.StepID != nil {
		step, err := repositories.StepRepository{}.GetByID(*r.StepID)
		if err != nil {
			return err
		}
		if step.TripID != tripID {
			return domain.ValidationError{Field: "step_id", Msg: "step belongs to another trip"}
		}
	}
	return nil
}

// GET /api/trips/:id/photos
func GetTripPhotos(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	photos, err := repositories.PhotoRepository{}.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// POST /api/trips/:id/photos
func CreateTripPhoto(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	var req photoRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(tripID); err != nil {
		RespondDomainError(c, err)
		return
	}

	p := models.Photo{
		TripID:  tripID,
		StepID:  req.StepID,
		URL:     req.URL,
		Caption: req.Caption,
		TakenAt: req.TakenAt,
	}
	id, err := repositories.PhotoRepository{}.Create(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.ID = id
	touchTrip(tripID)
	c.JSON(http.StatusCreated, p)
}

// PUT /api/trips/:id/photos/:photoId
func UpdateTripPhoto(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photoId")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	existing, err := repositories.PhotoRepository{}.GetByID(photoID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if existing.TripID != tripID {
		RespondDomainError(c, domain.NotFoundError{Resource: "photo"})
		return
	}

	var req photoRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(tripID); err != nil {
		RespondDomainError(c, err)
		return
	}

	p := models.Photo{
		ID:      photoID,
		TripID:  tripID,
		StepID:  req.StepID,
		URL:     req.URL,
		Caption: req.Caption,
		TakenAt: req.TakenAt,
	}
	if err := (repositories.PhotoRepository{}).Update(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, p)
}

// DELETE /api/trips/:id/photos/:photoId
func DeleteTripPhoto(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photoId")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	if err := (repositories.PhotoRepository{}).Delete(tripID, photoID); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
