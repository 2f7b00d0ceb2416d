package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKmParisToLyon(t *testing.T) {
	// Paris -> Lyon is roughly 392 km great-circle.
	d := HaversineKm(48.8566, 2.3522, 45.7640, 4.8357)
	assert.InDelta(t, 392, d, 5)
}

func TestPathDistanceKm(t *testing.T) {
	lats := []float64{48.8566, 45.7640, 43.2965}
	lngs := []float64{2.3522, 4.8357, 5.3698}

	total := PathDistanceKm(lats, lngs)
	legs := HaversineKm(lats[0], lngs[0], lats[1], lngs[1]) + HaversineKm(lats[1], lngs[1], lats[2], lngs[2])
	assert.InDelta(t, legs, total, 0.001)

	assert.Zero(t, PathDistanceKm(nil, nil))
	assert.Zero(t, PathDistanceKm([]float64{1}, []float64{1}))
	assert.Zero(t, PathDistanceKm([]float64{1, 2}, []float64{1}))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(0, 0))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.False(t, ValidCoordinate(91, 0))
	assert.False(t, ValidCoordinate(0, -181))
}
