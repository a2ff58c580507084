package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Infinity is positive infinity as a float64
var Infinity = math.Inf(1)

// Clamp limits x to [lo, hi]
func Clamp[T constraints.Integer | constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
