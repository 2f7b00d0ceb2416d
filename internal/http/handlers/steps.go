package handlers

import (
	"net/http"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/repositories"
	"travelog/internal/utils"

	"github.com/gin-gonic/gin"
)

type stepRequest struct {
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ArrivedAt  string  `json:"arrived_at"`
	DepartedAt *string `json:"departed_at"`
	Notes      string  `json:"notes"`
	Ordinal    int     `json:"ordinal"`
}

func (r *stepRequest) validate() error {
	r.Name = utils.NormalizeSpace(r.Name)
	if r.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if !utils.ValidCoordinate(r.Lat, r.Lng) {
		return domain.ValidationError{Field: "lat/lng", Msg: "out of range"}
	}
	if r.ArrivedAt == "" {
		return domain.ValidationError{Field: "arrived_at", Msg: "required"}
	}
	if _, err := utils.ParseDate(r.ArrivedAt); err != nil {
		return domain.ValidationError{Field: "arrived_at", Msg: "expected YYYY-MM-DD"}
	}
	if r.DepartedAt != nil {
		if _, err := utils.ParseDate(*r.DepartedAt); err != nil {
			return domain.ValidationError{Field: "departed_at", Msg: "expected YYYY-MM-DD"}
		}
		if *r.DepartedAt < r.ArrivedAt {
			return domain.ValidationError{Field: "departed_at", Msg: "before arrived_at"}
		}
	}
	return nil
}

// GET /api/trips/:id/steps
func GetTripSteps(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	steps, err := repositories.StepRepository{}.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, steps)
}

// POST /api/trips/:id/steps
func CreateTripStep(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	var req stepRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	s := models.Step{
		TripID:     tripID,
		Name:       req.Name,
		Location:   req.Location,
		Lat:        req.Lat,
		Lng:        req.Lng,
		ArrivedAt:  req.ArrivedAt,
		DepartedAt: req.DepartedAt,
		Notes:      req.Notes,
		Ordinal:    req.Ordinal,
	}
	id, err := repositories.StepRepository{}.Create(s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	s.ID = id
	touchTrip(tripID)
	c.JSON(http.StatusCreated, s)
}

// PUT /api/trips/:id/steps/:stepId
func UpdateTripStep(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	var req stepRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	s := models.Step{
		ID:         stepID,
		TripID:     tripID,
		Name:       req.Name,
		Location:   req.Location,
		Lat:        req.Lat,
		Lng:        req.Lng,
		ArrivedAt:  req.ArrivedAt,
		DepartedAt: req.DepartedAt,
		Notes:      req.Notes,
		Ordinal:    req.Ordinal,
	}
	if err := (repositories.StepRepository{}).Update(s); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, s)
}

// DELETE /api/trips/:id/steps/:stepId
func DeleteTripStep(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	if err := (repositories.StepRepository{}).Delete(tripID, stepID); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
