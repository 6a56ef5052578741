package hyperbolic

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tolerance = 1e-6

func near(a, b Point, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol*math.Max(1, r3.Norm(a))
}

// genPoint produces hyperboloid points within a few units of the origin.
func genPoint() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-2, 2),
		gen.Float64Range(-2, 2),
	).Map(func(v []interface{}) Point {
		return Lift(v[0].(float64), v[1].(float64))
	})
}

func TestLiftSatisfiesConstraint(t *testing.T) {
	for _, xy := range [][2]float64{{0, 0}, {1, 0}, {-2, 3}, {0.25, -0.75}} {
		p := Lift(xy[0], xy[1])
		assert.InDelta(t, 0, ConstraintError(p), 1e-12)
		assert.Greater(t, p.Z, 0.0)
	}
}

func TestCircleClamp(t *testing.T) {
	tests := []struct {
		name        string
		x, y, limit float64
		wantX       float64
		wantY       float64
	}{
		{"inside untouched", 0.3, 0.4, 1, 0.3, 0.4},
		{"outside scaled", 3, 4, 1, 0.6, 0.8},
		{"on boundary", 0, 2, 2, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := CircleClamp(tt.x, tt.y, tt.limit)
			assert.InDelta(t, tt.wantX, x, 1e-12)
			assert.InDelta(t, tt.wantY, y, 1e-12)
		})
	}
}

func TestToHyperbolic(t *testing.T) {
	assert.True(t, near(Origin, ToHyperbolic(0, 0), 1e-12))

	p := ToHyperbolic(0.5, -0.25)
	assert.InDelta(t, 0, ConstraintError(p), 1e-9)
	proj := Project(p)
	assert.InDelta(t, 0.5, proj.X, 1e-12)
	assert.InDelta(t, -0.25, proj.Y, 1e-12)

	// corners of the device square are pulled back inside the clamp radius
	far := Project(ToHyperbolic(1, 1))
	assert.InDelta(t, MaxDiskRadius, math.Hypot(far.X, far.Y), 1e-9)
	assert.False(t, math.IsNaN(ToHyperbolic(-1, 1).Z))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, MinDistance, Distance(Origin, Origin))

	p := Lift(math.Sinh(1.5), 0)
	assert.InDelta(t, 1.5, Distance(Origin, p), 1e-9)
	assert.InDelta(t, Distance(Origin, p), Distance(p, Origin), 1e-12)
}

func TestGeodesicEndpoints(t *testing.T) {
	p := Lift(0.3, -1.2)
	q := Lift(-1.1, 0.4)
	d := Distance(p, q)

	assert.True(t, near(p, GeodesicPoint(p, q, 0), tolerance))
	assert.True(t, near(q, GeodesicPoint(p, q, d), tolerance))

	// extrapolation and negative distances stay on the same geodesic
	beyond := GeodesicPoint(p, q, 2*d)
	assert.InDelta(t, 2*d, Distance(p, beyond), 1e-6)
	behind := GeodesicPoint(p, q, -d)
	assert.InDelta(t, 2*d, Distance(q, behind), 1e-6)
}

func TestTangentDirectionIsUnit(t *testing.T) {
	v := TangentDirection(Lift(0.2, 0.1), Lift(-0.5, 1))
	assert.InDelta(t, 1, r3.Norm(v), 1e-12)
}

func TestTransportMovesStartToEnd(t *testing.T) {
	start := Lift(0.4, 0.2)
	end := Lift(-0.7, 0.9)
	require.True(t, near(end, Transport(start, end, start), tolerance))
}

func TestProjectStaysInsideDisk(t *testing.T) {
	for _, xy := range [][2]float64{{0, 0}, {5, 5}, {-20, 1}} {
		v := Project(Lift(xy[0], xy[1]))
		assert.Less(t, math.Hypot(v.X, v.Y), 1.0)
	}
}

func TestGeometryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("distance is non-negative", prop.ForAll(
		func(p, q Point) bool {
			return Distance(p, q) >= 0
		},
		genPoint(), genPoint(),
	))

	properties.Property("distance to self is the floor", prop.ForAll(
		func(p Point) bool {
			return Distance(p, p) < 1e-6
		},
		genPoint(),
	))

	properties.Property("identity transport", prop.ForAll(
		func(a, p Point) bool {
			return near(p, Transport(a, a, p), tolerance)
		},
		genPoint(), genPoint(),
	))

	properties.Property("transport round trip", prop.ForAll(
		func(a, b, p Point) bool {
			return near(p, Transport(b, a, Transport(a, b, p)), tolerance)
		},
		genPoint(), genPoint(), genPoint(),
	))

	properties.Property("transport stays on the hyperboloid", prop.ForAll(
		func(a, b, p Point) bool {
			q := Transport(a, b, p)
			return ConstraintError(q) < tolerance*q.Z*q.Z && q.Z > 0
		},
		genPoint(), genPoint(), genPoint(),
	))

	properties.Property("transport is an isometry", prop.ForAll(
		func(a, b, p, q Point) bool {
			before := Distance(p, q)
			after := Distance(Transport(a, b, p), Transport(a, b, q))
			return math.Abs(before-after) < 1e-5
		},
		genPoint(), genPoint(), genPoint(), genPoint(),
	))

	properties.TestingRun(t)
}
