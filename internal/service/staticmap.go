package service

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"gopkg.in/guregu/null.v3"

	"daylog.dev/backend/internal/app/appconfig"
	"daylog.dev/backend/internal/model"
)

// clusterFraction scales the bounding-box diagonal into the marker coalescing
// threshold: pins closer than this fraction of the diagonal collapse into one
// numbered cluster marker.
const clusterFraction = 0.1

type StaticMap struct {
	baseURL string
}

func NewStaticMap(conf *appconfig.Config) *StaticMap {
	return &StaticMap{baseURL: conf.StaticMapBaseURL}
}

// MapForPoints builds a map reference plotting a path through points with one
// marker per point, coalescing markers that would visually overlap.
func (s *StaticMap) MapForPoints(points []model.Coordinates) null.String {
	if len(points) == 0 {
		return null.String{}
	}

	v := url.Values{}
	v.Set("path", encodePath(points))
	for _, m := range clusterMarkers(points) {
		v.Add("markers", m)
	}
	return null.StringFrom(s.baseURL + "?" + v.Encode())
}

// MapForTrack builds a map reference for an encoded track polyline.
func (s *StaticMap) MapForTrack(polyline string) null.String {
	if polyline == "" {
		return null.String{}
	}

	v := url.Values{}
	v.Set("polyline", polyline)
	return null.StringFrom(s.baseURL + "?" + v.Encode())
}

// MapForTrackWithPoints builds a map reference for a track polyline with
// checkin markers laid over it.
func (s *StaticMap) MapForTrackWithPoints(polyline string, points []model.Coordinates) null.String {
	if polyline == "" {
		return s.MapForPoints(points)
	}

	v := url.Values{}
	v.Set("polyline", polyline)
	for _, m := range clusterMarkers(points) {
		v.Add("markers", m)
	}
	return null.StringFrom(s.baseURL + "?" + v.Encode())
}

func encodePath(points []model.Coordinates) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, fmt.Sprintf("%.5f,%.5f", p.Latitude, p.Longitude))
	}
	return strings.Join(parts, "|")
}

type cluster struct {
	anchor model.Coordinates
	count  int
}

// clusterMarkers greedily merges points lying within the proximity threshold
// of an already-placed marker. Threshold derives from the group's bounding-box
// diagonal, so a tight cluster of venues in one block renders as a single
// numbered pin while a city-wide day keeps individual pins.
func clusterMarkers(points []model.Coordinates) []string {
	if len(points) == 0 {
		return nil
	}

	threshold := boundingBoxDiagonal(points) * clusterFraction

	clusters := []*cluster{}
	for _, p := range points {
		merged := false
		for _, c := range clusters {
			if distance(c.anchor, p) <= threshold {
				c.count++
				merged = true
				break
			}
		}
		if !merged {
			clusters = append(clusters, &cluster{anchor: p, count: 1})
		}
	}

	markers := make([]string, 0, len(clusters))
	for _, c := range clusters {
		if c.count > 1 {
			markers = append(markers, fmt.Sprintf("%.5f,%.5f,%d", c.anchor.Latitude, c.anchor.Longitude, c.count))
		} else {
			markers = append(markers, fmt.Sprintf("%.5f,%.5f", c.anchor.Latitude, c.anchor.Longitude))
		}
	}
	return markers
}

func boundingBoxDiagonal(points []model.Coordinates) float64 {
	minLat, maxLat := points[0].Latitude, points[0].Latitude
	minLon, maxLon := points[0].Longitude, points[0].Longitude
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Latitude)
		maxLat = math.Max(maxLat, p.Latitude)
		minLon = math.Min(minLon, p.Longitude)
		maxLon = math.Max(maxLon, p.Longitude)
	}
	return distance(
		model.Coordinates{Latitude: minLat, Longitude: minLon},
		model.Coordinates{Latitude: maxLat, Longitude: maxLon},
	)
}

// distance is a planar approximation, fine at city scale where clustering matters.
func distance(a, b model.Coordinates) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := (a.Longitude - b.Longitude) * math.Cos((a.Latitude+b.Latitude)/2*math.Pi/180)
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
