package models

import "math"

// Rate returns numerator/denominator as a percentage rounded to one decimal
// place. The denominator is clamped to at least 1 so an empty population
// reports 0.0 instead of dividing by zero.
func Rate(numerator, denominator int) float64 {
	if denominator < 1 {
		denominator = 1
	}
	return math.Round(float64(numerator)/float64(denominator)*1000) / 10
}
