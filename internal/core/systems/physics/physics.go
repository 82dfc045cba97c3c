package physics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidArgument is returned when a shape or polygon is requested with
// parameters that would produce degenerate output.
var ErrInvalidArgument = errors.New("invalid argument")

// Point is an immutable 2D coordinate.
type Point = r2.Vec

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Velocity is a per-tick displacement. It lives in caller state and is passed
// through the motion functions by value.
type Velocity struct {
	SX, SY float64
}

// Vel is shorthand for Velocity{SX: sx, SY: sy}.
func Vel(sx, sy float64) Velocity { return Velocity{SX: sx, SY: sy} }

// Distance computes the Euclidean distance between two points.
func Distance(a, b Point) float64 { return r2.Norm(r2.Sub(b, a)) }

// DistanceSq computes the squared Euclidean distance between two points.
func DistanceSq(a, b Point) float64 { return r2.Norm2(r2.Sub(b, a)) }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
