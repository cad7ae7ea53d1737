package meter

import (
	"math"
	"testing"
)

func TestHaversineMeters_ZeroForIdenticalPoints(t *testing.T) {
	t.Parallel()

	if d := haversineMeters(33.5731, -7.5898, 33.5731, -7.5898); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestHaversineMeters_Symmetric(t *testing.T) {
	t.Parallel()

	ab := haversineMeters(48.8566, 2.3522, 51.5074, -0.1278)
	ba := haversineMeters(51.5074, -0.1278, 48.8566, 2.3522)

	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("asymmetric: %f vs %f", ab, ba)
	}
}

func TestHaversineMeters_KnownDistances(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantM                  float64
		tolM                   float64
	}{
		// One degree of longitude at the equator.
		{"equator degree", 0, 0, 0, 1, 111195, 50},
		// Paris to London, city centers.
		{"paris london", 48.8566, 2.3522, 51.5074, -0.1278, 343550, 1500},
		// Small displacement typical of consumer GPS cadence.
		{"short hop", 0, 0, 0, 0.009, 1000.75, 1},
	}

	for _, tc := range cases {
		got := haversineMeters(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		if math.Abs(got-tc.wantM) > tc.tolM {
			t.Errorf("%s: got %f, want %f ± %f", tc.name, got, tc.wantM, tc.tolM)
		}
	}
}

func TestCoordinateValidation(t *testing.T) {
	t.Parallel()

	if !isValidLatitude(90) || !isValidLatitude(-90) || !isValidLatitude(0) {
		t.Error("boundary latitudes should be valid")
	}
	if isValidLatitude(90.0001) || isValidLatitude(math.NaN()) {
		t.Error("out-of-range latitude accepted")
	}
	if !isValidLongitude(180) || !isValidLongitude(-180) {
		t.Error("boundary longitudes should be valid")
	}
	if isValidLongitude(180.0001) || isValidLongitude(math.Inf(-1)) {
		t.Error("out-of-range longitude accepted")
	}
}
