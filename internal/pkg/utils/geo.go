package utils

import (
	"fmt"
	"math"
)

// CalculateHaversineDistance menghitung jarak antara dua titik koordinat dalam Meter.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // Jari-jari bumi dalam Meter

	// Konversi ke Radian
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	// Rumus Haversine
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// IsWithinGeofence reports whether the user coordinate falls inside the
// circular geofence around the office coordinate.
func IsWithinGeofence(userLat, userLon, officeLat, officeLon float64, radiusMeters int) bool {
	return CalculateHaversineDistance(userLat, userLon, officeLat, officeLon) <= float64(radiusMeters)
}

// WorkModeValidation is the outcome of a work-mode/location check.
type WorkModeValidation struct {
	Valid   bool
	Message string
}

// ValidateWorkMode checks whether the requested work mode is allowed at the
// user's current location. WFH is always valid; the location is only recorded
// for transparency. WFO outside the geofence is rejected when enforcement is
// on.
func ValidateWorkMode(workMode string, userLat, userLon, officeLat, officeLon float64, radiusMeters int, enforceGeofence bool) WorkModeValidation {
	switch workMode {
	case "WFO":
		if enforceGeofence && !IsWithinGeofence(userLat, userLon, officeLat, officeLon, radiusMeters) {
			return WorkModeValidation{
				Valid:   false,
				Message: "Anda harus berada di kantor untuk mode WFO. Silakan pilih mode WFH atau pindah ke lokasi kantor.",
			}
		}
		return WorkModeValidation{Valid: true, Message: "Validasi lokasi berhasil"}
	case "WFH":
		return WorkModeValidation{Valid: true, Message: "Mode WFH aktif. Lokasi akan dicatat untuk transparansi."}
	}
	return WorkModeValidation{Valid: false, Message: "Mode kerja tidak valid"}
}

// RoundDistanceMeters rounds a haversine distance to whole meters, matching
// the precision stored in notes and returned in error payloads.
func RoundDistanceMeters(d float64) int {
	return int(math.Round(d))
}

// FormatDistanceNote renders the check-in note prefix for a measured distance.
func FormatDistanceNote(distanceMeters int, message string) string {
	return fmt.Sprintf("distance=%dm, %s", distanceMeters, message)
}
