package weather

import (
	"math"
	"sync"
	"time"
)

const (
	// sameLocationMeters is the strict upper bound below which two geo
	// queries target the same place.
	sameLocationMeters = 5 * 1000.0

	// DefaultRequestThreshold is how long a repeat query for the same target
	// is rejected after the previous admission.
	DefaultRequestThreshold = 10 * time.Minute

	earthRadiusMeters = 6371000.0
)

// RequestGate is the stateful admission filter protecting the upstream
// service from redundant queries. It tracks the most recent admitted query
// and admission time per query kind; geo and location queries are tracked
// independently, and name searches are never gated.
//
// The gate only reads its state during Admit. Recording happens separately,
// after the caller has successfully completed the admitted query, so a
// rejected or failed request never advances the state.
type RequestGate struct {
	mu        sync.Mutex
	threshold time.Duration

	lastGeo   *GeoQuery
	lastGeoAt time.Time
	lastLoc   *LocationQuery
	lastLocAt time.Time
}

// NewRequestGate creates a gate with the given rejection window. A
// non-positive threshold falls back to DefaultRequestThreshold.
func NewRequestGate(threshold time.Duration) *RequestGate {
	if threshold <= 0 {
		threshold = DefaultRequestThreshold
	}
	return &RequestGate{threshold: threshold}
}

// Admit reports whether the query may proceed to the upstream service. A
// query is rejected only when it targets the same place as the stored last
// query of its kind AND arrives within the rejection window of that query's
// admission. The first query of a kind is always admitted. Name queries are
// always admitted.
func (g *RequestGate) Admit(q Query, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch query := q.(type) {
	case GeoQuery:
		if g.lastGeo == nil {
			return true
		}
		return !(sameGeoLocation(query, *g.lastGeo) && g.tooSoon(g.lastGeoAt, now))
	case LocationQuery:
		if g.lastLoc == nil {
			return true
		}
		return !(query == *g.lastLoc && g.tooSoon(g.lastLocAt, now))
	default:
		return true
	}
}

// Record stores the query as the last admitted one of its kind and advances
// the admission timestamp. Callers invoke it after the query completed
// successfully; cancelled or failed queries are never recorded.
func (g *RequestGate) Record(q Query, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch query := q.(type) {
	case GeoQuery:
		g.lastGeo = &query
		g.lastGeoAt = now
	case LocationQuery:
		g.lastLoc = &query
		g.lastLocAt = now
	}
}

// LastAdmitted returns the most recently recorded query across both gated
// kinds, for periodic refresh.
func (g *RequestGate) LastAdmitted() (Query, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.lastGeo == nil && g.lastLoc == nil:
		return nil, false
	case g.lastGeo == nil:
		return *g.lastLoc, true
	case g.lastLoc == nil:
		return *g.lastGeo, true
	case g.lastLocAt.After(g.lastGeoAt):
		return *g.lastLoc, true
	default:
		return *g.lastGeo, true
	}
}

func (g *RequestGate) tooSoon(lastAt, now time.Time) bool {
	return now.Sub(lastAt) < g.threshold
}

// sameGeoLocation reports whether two coordinates are closer than the
// same-location threshold. Exactly at the threshold is not "same".
func sameGeoLocation(a, b GeoQuery) bool {
	return haversineMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude) < sameLocationMeters
}

// haversineMeters computes the great-circle distance between two coordinates.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := math.Pi / 180.0
	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
