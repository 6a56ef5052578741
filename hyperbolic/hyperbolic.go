// Package hyperbolic implements geometry on the hyperboloid model of the
// hyperbolic plane: the upper sheet of x² + y² − w² = −1.
//
// Points are stored as gonum r3 vectors whose Z component holds w.
package hyperbolic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a point on the hyperboloid, Z holds the w coordinate.
type Point = r3.Vec

const (
	// MinDistance floors Distance so callers can divide by it and by its sinh.
	MinDistance = 1e-7

	// MaxDiskRadius bounds disk-plane input before lifting to the hyperboloid.
	MaxDiskRadius = math.Sqrt2 / 1.5
)

// Origin is the point (0, 0, 1), the centre of the disk.
var Origin = Point{X: 0, Y: 0, Z: 1}

// Inner returns the Lorentzian inner product x1x2 + y1y2 − w1w2.
func Inner(p, q Point) float64 {
	return p.X*q.X + p.Y*q.Y - p.Z*q.Z
}

// Lift places (x, y) on the hyperboloid by solving for w.
func Lift(x, y float64) Point {
	return Point{X: x, Y: y, Z: math.Sqrt(x*x + y*y + 1)}
}

// CircleClamp scales (x, y) down onto the circle of radius maxLength when it
// lies on or outside it.
func CircleClamp(x, y, maxLength float64) (float64, float64) {
	length := math.Hypot(x, y)
	if length >= maxLength {
		div := length / maxLength
		x /= div
		y /= div
	}
	return x, y
}

// ToHyperbolic maps disk-plane coordinates onto the hyperboloid. Input is
// clamped to MaxDiskRadius rather than rejected.
func ToHyperbolic(px, py float64) Point {
	px, py = CircleClamp(px, py, MaxDiskRadius)
	return r3.Scale(1/math.Sqrt(1-px*px-py*py), Point{X: px, Y: py, Z: 1})
}

// Distance returns the hyperbolic distance between p and q, never less than
// MinDistance.
func Distance(p, q Point) float64 {
	d := math.Acosh(-Inner(p, q))
	// acosh of a value rounded below 1 is NaN, which also lands on the floor
	if d > MinDistance {
		return d
	}
	return MinDistance
}

// direction is the tangent vector at p towards m used by the exponential map.
func direction(p, m Point) r3.Vec {
	d := Distance(p, m)
	return r3.Scale(1/math.Sinh(d), r3.Sub(m, r3.Scale(math.Cosh(d), p)))
}

// GeodesicPoint returns the point at signed distance t from p along the
// geodesic through m. t may be negative or larger than Distance(p, m).
func GeodesicPoint(p, m Point, t float64) Point {
	v := direction(p, m)
	return r3.Add(r3.Scale(math.Cosh(t), p), r3.Scale(math.Sinh(t), v))
}

// TangentDirection returns the unit tangent at p pointing towards m.
func TangentDirection(p, m Point) r3.Vec {
	return r3.Unit(direction(p, m))
}

// Reflect mirrors p through the point c.
func Reflect(c, p Point) Point {
	return GeodesicPoint(p, c, 2*Distance(p, c))
}

// Transport carries p through the isometry that moves start onto end along
// their geodesic. It is the composition of two point reflections through the
// quarter and three-quarter points of the start-end segment.
func Transport(start, end, p Point) Point {
	d := Distance(start, end)
	quarter := GeodesicPoint(start, end, d*0.25)
	threeQuarter := GeodesicPoint(start, end, d*0.75)
	return Reflect(threeQuarter, Reflect(quarter, p))
}

// Project maps a hyperboloid point to the unit disk.
func Project(p Point) r2.Vec {
	return r2.Vec{X: p.X / p.Z, Y: p.Y / p.Z}
}

// ConstraintError reports how far p is from the hyperboloid.
func ConstraintError(p Point) float64 {
	return math.Abs(Inner(p, p) + 1)
}
