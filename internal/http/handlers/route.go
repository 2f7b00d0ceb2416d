package handlers

import (
	"net/http"

	"travelog/internal/domain"
	"travelog/internal/domain/models"
	"travelog/internal/repositories"
	"travelog/internal/utils"

	"github.com/gin-gonic/gin"
)

type routePointInput struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	RecordedAt string  `json:"recorded_at"`
}

type appendRouteRequest struct {
	Points []routePointInput `json:"points"`
}

const maxRouteBatch = 500

// POST /api/trips/:id/route
// Appends a batch of recorded GPS samples.
func AppendTripRoute(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	var req appendRouteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.Points) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "points", Msg: "required"})
		return
	}
	if len(req.Points) > maxRouteBatch {
		RespondDomainError(c, domain.ValidationError{Field: "points", Msg: "batch too large"})
		return
	}

	points := make([]models.RoutePoint, 0, len(req.Points))
	for _, p := range req.Points {
		if !utils.ValidCoordinate(p.Lat, p.Lng) {
			RespondDomainError(c, domain.ValidationError{Field: "lat/lng", Msg: "out of range"})
			return
		}
		if _, err := utils.ParseDateTime(p.RecordedAt); err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "recorded_at", Msg: "expected YYYY-MM-DD HH:MM:SS"})
			return
		}
		points = append(points, models.RoutePoint{TripID: tripID, Lat: p.Lat, Lng: p.Lng, RecordedAt: p.RecordedAt})
	}

	if err := (repositories.RouteRepository{}).AppendBatch(tripID, points); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusCreated, gin.H{"appended": len(points)})
}

// GET /api/trips/:id/route
// Ordered points plus total distance.
func GetTripRoute(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}

	points, err := repositories.RouteRepository{}.ListByTrip(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	lats := make([]float64, len(points))
	lngs := make([]float64, len(points))
	for i, p := range points {
		lats[i] = p.Lat
		lngs[i] = p.Lng
	}

	c.JSON(http.StatusOK, gin.H{
		"points":      points,
		"distance_km": utils.PathDistanceKm(lats, lngs),
	})
}

// DELETE /api/trips/:id/route
func ClearTripRoute(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireTripMember(c, tripID) {
		return
	}
	if err := (repositories.RouteRepository{}).Clear(tripID); err != nil {
		RespondDomainError(c, err)
		return
	}
	touchTrip(tripID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
