package utils

import (
	"math"
)

// Round rounds a float64 to the specified number of decimal places
func Round(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(value*multiplier) / multiplier
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is 0
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Percent returns 100*part/whole, or 0 when whole is 0
func Percent(part, whole int) float64 {
	return SafeDivide(100*float64(part), float64(whole))
}

// Finite replaces NaN and infinities with 0
func Finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
