// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package geo provides the coordinate math used across the engine: great
// circle distances for travel estimates, cheap squared-degree distances for
// prefiltering, centroids, and a spatial hash grid for proximity dedupe.
package geo

import (
	"math"

	"github.com/agoraplan/agora/internal/models"
)

// earthRadiusMeters is the mean Earth radius.
const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two coordinates
// in meters.
func HaversineMeters(a, b models.Location) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// HaversineKm returns the great-circle distance in kilometers.
func HaversineKm(a, b models.Location) float64 {
	return HaversineMeters(a, b) / 1000.0
}

// SquaredDegrees returns the squared Euclidean distance in degree space.
// Only valid for ranking nearby points against each other; never use it as a
// physical distance.
func SquaredDegrees(a, b models.Location) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return dLat*dLat + dLng*dLng
}

// EuclideanDegrees returns the Euclidean distance in degree space, the
// distance unit the vector scoring penalty operates on.
func EuclideanDegrees(a, b models.Location) float64 {
	return math.Sqrt(SquaredDegrees(a, b))
}

// Centroid returns the arithmetic mean of the given coordinates. The zero
// location is returned for an empty input.
func Centroid(points []models.Location) models.Location {
	if len(points) == 0 {
		return models.Location{}
	}
	var lat, lng float64
	for _, p := range points {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(points))
	return models.Location{Lat: lat / n, Lng: lng / n}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
