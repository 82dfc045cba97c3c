package physics

// PointInRect reports whether p lies inside rect, edges included.
// rect.P1 must be the lower-left corner and rect.P2 the upper-right one;
// swapped corners make every point test as outside.
func PointInRect(p Point, rect Rectangle) bool {
	p1, p2 := rect.P1(), rect.P2()
	return p1.X <= p.X && p.X <= p2.X &&
		p1.Y <= p.Y && p.Y <= p2.Y
}

// PointInCircle reports whether p lies strictly inside circle.
// Points exactly on the circumference are outside.
func PointInCircle(p Point, circle Circle) bool {
	r := circle.Radius()
	return DistanceSq(p, circle.Center()) < r*r
}
