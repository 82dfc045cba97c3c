package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RotatePoint rotates p about center by angleDegrees. Counterclockwise is positive.
// A zero angle returns p unchanged.
func RotatePoint(p Point, angleDegrees float64, center Point) Point {
	return r2.NewRotation(angleDegrees*math.Pi/180, center).Rotate(p)
}

// RegularPolygon returns the n vertices of a regular polygon inscribed in a
// circle of the given radius. Vertex 0 is center+(radius, 0) and vertex i sits
// at the absolute angle i*360/n, so the polygon closes exactly for every n.
func RegularPolygon(center Point, radius float64, n int) ([]Point, error) {
	if err := checkPolygon(radius, n); err != nil {
		return nil, err
	}

	first := Pt(center.X+radius, center.Y)
	step := 360.0 / float64(n)

	pts := make([]Point, n)
	for i := range pts {
		pts[i] = RotatePoint(first, float64(i)*step, center)
	}
	return pts, nil
}

// LegacyRegularPolygon reproduces the older accumulation scheme: every vertex
// is the previous one rotated by round(360/n) degrees, and the first emitted
// vertex has already been rotated once. For n that does not divide 360 the
// rounding error compounds and the last vertex does not land back on the start.
// Prefer RegularPolygon unless output must match shapes built the old way.
func LegacyRegularPolygon(center Point, radius float64, n int) ([]Point, error) {
	if err := checkPolygon(radius, n); err != nil {
		return nil, err
	}

	step := math.RoundToEven(360.0 / float64(n))
	p := Pt(center.X+radius, center.Y)

	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		p = RotatePoint(p, step, center)
		pts = append(pts, p)
	}
	return pts, nil
}

func checkPolygon(radius float64, n int) error {
	if n < 3 {
		return invalidf("polygon needs at least 3 sides, got %d", n)
	}
	if !(radius > 0) {
		return invalidf("polygon radius must be positive, got %g", radius)
	}
	return nil
}
