package utils

import "math"

const earthRadiusMeter = 6371000.0

// HitungJarak menghitung jarak dua koordinat (meter) dengan formula haversine.
func HitungJarak(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeter * c
}

// DalamRadius mengecek apakah jarak masih di dalam radius absensi.
// Tepat di batas radius (jarak == radius) dihitung valid.
func DalamRadius(jarak, radius float64) bool {
	return jarak <= radius
}
