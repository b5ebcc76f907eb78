package patrimoine

import (
	"math"
	"testing"
)

// approx asserts a float is within tolerance of the expected value.
func approx(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %f, want %f (±%f)", name, got, want, tolerance)
	}
}
