package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Brno (49.2, 16.6167) to Prague (50.0755, 14.4378) ~ 185 km
	d := HaversineKm(49.2, 16.616667, 50.0755, 14.4378)
	if d < 180 || d > 190 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmSamePoint(t *testing.T) {
	if d := HaversineKm(49.2, 16.6, 49.2, 16.6); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestDistanceApprox(t *testing.T) {
	approx, err := DistanceApprox(49.2, 16.6, 49.201, 16.601)
	if err != nil {
		t.Fatal(err)
	}

	exact := HaversineKm(49.2, 16.6, 49.201, 16.601)

	if math.Abs(approx-exact) > 0.001 {
		t.Fatalf("approximation %v too far from %v", approx, exact)
	}
}

func TestDistanceApproxInvalid(t *testing.T) {
	cases := [][4]float64{
		{math.NaN(), 0, 0, 0},
		{0, 0, 91, 0},
		{0, 181, 0, 0},
		{0, 0, 0, math.Inf(1)},
	}

	for _, c := range cases {
		if _, err := DistanceApprox(c[0], c[1], c[2], c[3]); err == nil {
			t.Errorf("expected error for %v", c)
		}
	}
}
