package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// PathDistanceKm sums consecutive-pair distances over an ordered lat/lng path.
func PathDistanceKm(lats, lngs []float64) float64 {
	if len(lats) != len(lngs) || len(lats) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(lats); i++ {
		total += HaversineKm(lats[i-1], lngs[i-1], lats[i], lngs[i])
	}
	return total
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ValidCoordinate checks latitude/longitude ranges.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
