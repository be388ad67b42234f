// Package weight computes the theoretical mass of reinforcement bars.
package weight

import "math"

// densityFactor converts mm² of bar cross-section per metre of length into
// kilograms (steel density). Do not change.
const densityFactor = 0.006165

// Total returns the weight in kg of quantity bars of the given diameter (mm)
// and length (m).
func Total(diameter, length float64, quantity int) float64 {
	return diameter * diameter * densityFactor * length * float64(quantity)
}

// Round2 rounds v to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
