// Package geo は店舗位置と検索中心点の距離計算をまとめたジオメトリユーティリティ。
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius used for Haversine distances.
	EarthRadiusKm = 6371.0
	// SphereRadiusKm is the equatorial radius MongoDB's $centerSphere expects radii to be divided by.
	SphereRadiusKm = 6378.1
)

// Point は経度・緯度の組。GeoJSON と同じく経度が先。
type Point struct {
	Longitude float64
	Latitude  float64
}

// NewPoint は緯度・経度の範囲を検証して Point を返す。
func NewPoint(latitude, longitude float64) (Point, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || latitude < -90 || latitude > 90 {
		return Point{}, fmt.Errorf("latitude out of range: %v", latitude)
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < -180 || longitude > 180 {
		return Point{}, fmt.Errorf("longitude out of range: %v", longitude)
	}
	return Point{Longitude: longitude, Latitude: latitude}, nil
}

// Coordinates returns the point in GeoJSON order: [longitude, latitude].
func (p Point) Coordinates() []float64 {
	return []float64{p.Longitude, p.Latitude}
}

// FromCoordinates は GeoJSON 順 [lon, lat] の配列から Point を復元する。要素不足なら false。
func FromCoordinates(coords []float64) (Point, bool) {
	if len(coords) < 2 {
		return Point{}, false
	}
	return Point{Longitude: coords[0], Latitude: coords[1]}, true
}

// DistanceKm は Haversine 公式で 2 点間の大圏距離 (km) を返す。
func DistanceKm(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// RadiusToRadians converts a search radius in kilometres to the angular radius used by $centerSphere.
func RadiusToRadians(radiusKm float64) float64 {
	return radiusKm / SphereRadiusKm
}

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
