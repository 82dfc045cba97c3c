package physics

// MoveTo moves shape so that its center lands on (xNew, yNew).
// The move is always issued, even when the displacement is zero.
func MoveTo(shape Shape, xNew, yNew float64) {
	c := shape.Center()
	shape.Move(xNew-c.X, yNew-c.Y)
}

// WrapBoundary applies toroidal wrapping inside the arena [-w, w] x [-w, w].
// A center past one edge re-enters from the opposite one, each axis on its own.
// It reports whether the shape was moved.
func WrapBoundary(shape Shape, w float64) bool {
	c := shape.Center()
	x, y := wrapAxis(c.X, w), wrapAxis(c.Y, w)
	if x == c.X && y == c.Y {
		return false
	}
	MoveTo(shape, x, y)
	return true
}

func wrapAxis(v, w float64) float64 {
	switch {
	case v > w:
		return v - 2*w
	case v < -w:
		return v + 2*w
	default:
		return v
	}
}

// ReflectBoundary keeps circle inside the arena [-w, w] x [-w, w].
// On each axis where the center has left the arena it is clamped back onto the
// wall and that velocity component is negated. A corner flips both.
func ReflectBoundary(circle Shape, w float64, v Velocity) Velocity {
	c := circle.Center()
	x, y := c.X, c.Y

	x, v.SX = reflectAxis(x, w, v.SX)
	y, v.SY = reflectAxis(y, w, v.SY)

	if x != c.X || y != c.Y {
		MoveTo(circle, x, y)
	}
	return v
}

func reflectAxis(pos, w, speed float64) (float64, float64) {
	switch {
	case pos > w:
		return w, -speed
	case pos < -w:
		return -w, -speed
	default:
		return pos, speed
	}
}

// ReflectRect bounces circle off the top or bottom face of rect.
//
// The rectangle is inflated by the circle's radius on every side and a center
// strictly inside the inflated bounds counts as a hit. Only the vertical axis
// responds: a falling circle is placed on top of rect, a rising one just below
// it, and SY is negated. SX is never touched, so the side faces never bounce
// anything. Keep obstacles thin relative to the circle.
//
// A circle with SY == 0 gets no response even when it overlaps rect.
// rect.P1 must be the lower-left corner and rect.P2 the upper-right one.
func ReflectRect(circle Circle, rect Rectangle, v Velocity) Velocity {
	if !overlapsInflated(circle, rect) {
		return v
	}

	c := circle.Center()
	r := circle.Radius()

	var y float64
	switch {
	case v.SY < 0:
		y = rect.P2().Y + r
	case v.SY > 0:
		y = rect.P1().Y - r
	default:
		return v
	}

	v.SY = -v.SY
	if y != c.Y {
		MoveTo(circle, c.X, y)
	}
	return v
}

// overlapsInflated reports whether the circle center lies strictly inside
// rect grown by the circle radius.
func overlapsInflated(circle Circle, rect Rectangle) bool {
	c := circle.Center()
	r := circle.Radius()
	p1, p2 := rect.P1(), rect.P2()
	return p1.X-r < c.X && c.X < p2.X+r &&
		p1.Y-r < c.Y && c.Y < p2.Y+r
}
