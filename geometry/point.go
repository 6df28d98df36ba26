// Package geometry provides the 2D point value used by the demo script
package geometry

import (
	"math"
	"strconv"
)

// Point is a pair of coordinates on the plane
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// NewPoint creates a point at (x, y)
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistanceFromOrigin returns the Euclidean distance between p and (0, 0)
func (p Point) DistanceFromOrigin() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) &&
		!math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'g', -1, 64) + ", " +
		strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}
