package physics

// Capability interfaces for the drawable shapes the motion policies operate on.
// Shapes are owned by the caller; physics only reads their geometry and moves them.

// Shape is anything with a center that can be translated.
type Shape interface {
	Center() Point
	// Move translates the shape by (dx, dy).
	Move(dx, dy float64)
}

// Circle is a Shape with a radius.
type Circle interface {
	Shape
	Radius() float64
}

// Rectangle is an axis-aligned Shape defined by two corners.
// P1 is expected to be the lower-left corner and P2 the upper-right one.
// The order is not checked anywhere in this package.
type Rectangle interface {
	Shape
	P1() Point
	P2() Point
}
