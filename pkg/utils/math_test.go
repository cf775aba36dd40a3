package utils

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		expected float64
	}{
		{66.666666, 2, 66.67},
		{1.005, 0, 1},
		{20, 2, 20},
		{-3.14159, 3, -3.142},
	}

	for _, tt := range tests {
		result := Round(tt.value, tt.decimals)
		if result != tt.expected {
			t.Errorf("Round(%f, %d) = %f, expected %f", tt.value, tt.decimals, result, tt.expected)
		}
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(10, 4); got != 2.5 {
		t.Errorf("SafeDivide(10, 4) = %f, expected 2.5", got)
	}
	if got := SafeDivide(10, 0); got != 0 {
		t.Errorf("SafeDivide(10, 0) = %f, expected 0", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Round(Percent(2, 3), 2); got != 66.67 {
		t.Errorf("Percent(2, 3) = %f, expected 66.67", got)
	}
	if got := Percent(0, 0); got != 0 {
		t.Errorf("Percent(0, 0) = %f, expected 0", got)
	}
}

func TestFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if Finite(v) != 0 {
			t.Errorf("Finite(%f) expected 0", v)
		}
	}
	if Finite(1.5) != 1.5 {
		t.Error("Finite should keep finite values")
	}
}
