package locode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		in       string
		lat, lng float64
		ok       bool
	}{
		{"4042N 07400W", 40.7, -74.0, true},
		{"5113N 00425E", 51 + 13.0/60, 4 + 25.0/60, true},
		{"3352S 15112E", -(33 + 52.0/60), 151 + 12.0/60, true},
		{"4042n 07400w", 40.7, -74.0, true},
		{"  4042N   07400W ", 40.7, -74.0, true},
		{"9000N 18000W", 90, -180, true},
		{"0000N 00000E", 0, 0, true},
		{"4060N 07400W", 0, 0, false},
		{"9100N 00000E", 0, 0, false},
		{"4042N 18100E", 0, 0, false},
		{"4042E 07400N", 0, 0, false},
		{"404N 07400W", 0, 0, false},
		{"4042N", 0, 0, false},
		{"AB42N 07400W", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lat, lng, ok := parseCoordinates(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.lat, lat, 1e-9)
				assert.InDelta(t, tt.lng, lng, 1e-9)
			}
		})
	}
}

func TestLocationLatLng(t *testing.T) {
	lat, lng, ok := NewLocation(Attributes{Coordinates: "4042N 07400W"}).LatLng()
	assert.True(t, ok)
	assert.InDelta(t, 40.7, lat, 1e-9)
	assert.InDelta(t, -74.0, lng, 1e-9)

	_, _, ok = Location{}.LatLng()
	assert.False(t, ok)
}

func TestLocationGeohash(t *testing.T) {
	h := NewLocation(Attributes{Coordinates: "4042N 07400W"}).Geohash()
	assert.True(t, strings.HasPrefix(h, "dr5rs"), "got %q", h)

	assert.Equal(t, "", NewLocation(Attributes{Coordinates: "bogus"}).Geohash())
}

func TestNearestSearchesWholeRadius(t *testing.T) {
	ix := NewIndex([]Location{
		NewLocation(Attributes{CountryCode: "BE", CityCode: "ANR", Coordinates: "5113N 00425E"}),
	})
	lat, lng := 51+13.0/60+0.8, 4+25.0/60

	assert.Len(t, ix.Within(lat, lng, maxNearestDistanceKm), 1)
	l, ok := ix.Nearest(lat, lng)
	assert.True(t, ok, "a location about 89km away is within reach")
	assert.Equal(t, "BE ANR", l.Locode())

	_, ok = ix.Nearest(lat+0.2, lng)
	assert.False(t, ok, "a location about 111km away is out of reach")
}
