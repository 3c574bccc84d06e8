package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var gateEpoch = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func TestGateFirstQueryAlwaysAdmitted(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)

	assert.True(t, g.Admit(GeoQuery{Latitude: 48.85, Longitude: 2.35}, gateEpoch))
	assert.True(t, g.Admit(LocationQuery{CityID: "2988507"}, gateEpoch))
}

func TestGateRejectsNearbyRepeatWithinWindow(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	q := GeoQuery{Latitude: 48.8566, Longitude: 2.3522}
	g.Record(q, gateEpoch)

	// ~111 m north of the recorded point, one minute later.
	near := GeoQuery{Latitude: 48.8576, Longitude: 2.3522}
	assert.False(t, g.Admit(near, gateEpoch.Add(time.Minute)))

	// Same point, but past the rejection window.
	assert.True(t, g.Admit(near, gateEpoch.Add(10*time.Minute)))
}

func TestGateAdmitsDistantCoordinates(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	g.Record(GeoQuery{Latitude: 48.8566, Longitude: 2.3522}, gateEpoch)

	// Roughly 8 km away: a different target regardless of elapsed time.
	far := GeoQuery{Latitude: 48.93, Longitude: 2.36}
	assert.True(t, g.Admit(far, gateEpoch.Add(time.Second)))
}

func TestGateExactThresholdDistanceIsNotSame(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	base := GeoQuery{Latitude: 0, Longitude: 0}
	g.Record(base, gateEpoch)

	// One degree of latitude is about 111.19 km; scale to the 5000 m
	// threshold with a hair of margin against float rounding. Strictly
	// below it is "same"; at it is not.
	deltaLat := 5000.0 / haversineMeters(0, 0, 1, 0)
	atThreshold := GeoQuery{Latitude: deltaLat * (1 + 1e-9), Longitude: 0}
	assert.GreaterOrEqual(t, haversineMeters(0, 0, atThreshold.Latitude, 0), 5000.0)

	assert.True(t, g.Admit(atThreshold, gateEpoch.Add(time.Second)))
	assert.False(t, g.Admit(GeoQuery{Latitude: deltaLat * 0.99, Longitude: 0}, gateEpoch.Add(time.Second)))
}

func TestGateLocationEqualityUsesAllFields(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	loc := LocationQuery{CityID: "2988507", City: "Paris", PostalCode: "75000", Country: "France", CountryID: "FR"}
	g.Record(loc, gateEpoch)

	assert.False(t, g.Admit(loc, gateEpoch.Add(time.Minute)))

	// Any differing field makes it a different target.
	other := loc
	other.PostalCode = "75001"
	assert.True(t, g.Admit(other, gateEpoch.Add(time.Minute)))
}

func TestGateTracksKindsIndependently(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	g.Record(GeoQuery{Latitude: 48.85, Longitude: 2.35}, gateEpoch)

	// A location query is never compared against the stored geo query.
	assert.True(t, g.Admit(LocationQuery{CityID: "2988507"}, gateEpoch.Add(time.Second)))

	g.Record(LocationQuery{CityID: "2988507"}, gateEpoch.Add(time.Second))
	assert.False(t, g.Admit(LocationQuery{CityID: "2988507"}, gateEpoch.Add(2*time.Second)))
	assert.False(t, g.Admit(GeoQuery{Latitude: 48.85, Longitude: 2.35}, gateEpoch.Add(2*time.Second)))
}

func TestGateNameQueriesNeverGated(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	assert.True(t, g.Admit(NameQuery{Name: "Paris"}, gateEpoch))
	g.Record(NameQuery{Name: "Paris"}, gateEpoch)
	assert.True(t, g.Admit(NameQuery{Name: "Paris"}, gateEpoch))
}

func TestGateTimestampAdvancesOnRecord(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)
	q := GeoQuery{Latitude: 10, Longitude: 10}

	g.Record(q, gateEpoch)
	later := gateEpoch.Add(11 * time.Minute)
	assert.True(t, g.Admit(q, later))

	// Recording again moves the window forward; the same query is rejected
	// relative to the new timestamp, not the original one.
	g.Record(q, later)
	assert.False(t, g.Admit(q, later.Add(9*time.Minute)))
	assert.True(t, g.Admit(q, later.Add(10*time.Minute)))
}

func TestGateLastAdmitted(t *testing.T) {
	g := NewRequestGate(DefaultRequestThreshold)

	_, ok := g.LastAdmitted()
	assert.False(t, ok)

	geo := GeoQuery{Latitude: 1, Longitude: 2}
	g.Record(geo, gateEpoch)
	q, ok := g.LastAdmitted()
	assert.True(t, ok)
	assert.Equal(t, geo, q)

	loc := LocationQuery{CityID: "42"}
	g.Record(loc, gateEpoch.Add(time.Minute))
	q, ok = g.LastAdmitted()
	assert.True(t, ok)
	assert.Equal(t, loc, q)
}
