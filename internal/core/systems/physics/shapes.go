package physics

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Concrete shapes implementing the capability interfaces.
// They are plain values behind a pointer and are not safe for concurrent use.

var (
	_ Circle    = (*CircleShape)(nil)
	_ Rectangle = (*RectShape)(nil)
	_ Shape     = (*OvalShape)(nil)
	_ Shape     = (*PolygonShape)(nil)
)

type CircleShape struct {
	center Point
	radius float64
}

// NewCircle creates a circle. A negative radius is rejected.
func NewCircle(center Point, radius float64) (*CircleShape, error) {
	if radius < 0 {
		return nil, invalidf("circle radius must not be negative, got %g", radius)
	}
	return &CircleShape{center: center, radius: radius}, nil
}

func (c *CircleShape) Center() Point       { return c.center }
func (c *CircleShape) Radius() float64     { return c.radius }
func (c *CircleShape) Move(dx, dy float64) { c.center = r2.Add(c.center, Pt(dx, dy)) }

// RectShape is an axis-aligned rectangle stored as two corners.
type RectShape struct {
	p1, p2 Point
}

// NewRect keeps the corners exactly as given. Callers pass the lower-left
// corner first; nothing is reordered.
func NewRect(p1, p2 Point) *RectShape {
	return &RectShape{p1: p1, p2: p2}
}

// NewRectAround builds a rectangle from its center and half extents.
// The corners are always well ordered for non-negative half extents.
func NewRectAround(cx, cy, halfWidth, halfHeight float64) *RectShape {
	return NewRect(
		Pt(cx-halfWidth, cy-halfHeight),
		Pt(cx+halfWidth, cy+halfHeight),
	)
}

func (r *RectShape) P1() Point { return r.p1 }
func (r *RectShape) P2() Point { return r.p2 }

func (r *RectShape) Center() Point {
	return r2.Scale(0.5, r2.Add(r.p1, r.p2))
}

func (r *RectShape) Move(dx, dy float64) {
	d := Pt(dx, dy)
	r.p1 = r2.Add(r.p1, d)
	r.p2 = r2.Add(r.p2, d)
}

// Bounds returns the rectangle as a gonum box, corners untouched.
func (r *RectShape) Bounds() r2.Box {
	return r2.Box{Min: r.p1, Max: r.p2}
}

// OvalShape is an ellipse described by its bounding box.
type OvalShape struct {
	RectShape
}

// NewOvalAround builds an oval from its center and the two half axes.
func NewOvalAround(cx, cy, halfWidth, halfHeight float64) *OvalShape {
	return &OvalShape{RectShape: *NewRectAround(cx, cy, halfWidth, halfHeight)}
}

// PolygonShape is a movable vertex list, usually produced by RegularPolygon.
type PolygonShape struct {
	vertices []Point
}

// NewPolygon copies vertices so later moves never alias the caller's slice.
func NewPolygon(vertices []Point) (*PolygonShape, error) {
	if len(vertices) < 3 {
		return nil, invalidf("polygon needs at least 3 vertices, got %d", len(vertices))
	}
	v := make([]Point, len(vertices))
	copy(v, vertices)
	return &PolygonShape{vertices: v}, nil
}

// Vertices returns a copy of the vertex list in generation order.
func (p *PolygonShape) Vertices() []Point {
	v := make([]Point, len(p.vertices))
	copy(v, p.vertices)
	return v
}

// Center is the vertex centroid.
func (p *PolygonShape) Center() Point {
	var sum Point
	for _, v := range p.vertices {
		sum = r2.Add(sum, v)
	}
	return r2.Scale(1/float64(len(p.vertices)), sum)
}

func (p *PolygonShape) Move(dx, dy float64) {
	d := Pt(dx, dy)
	for i := range p.vertices {
		p.vertices[i] = r2.Add(p.vertices[i], d)
	}
}

// Button is a labelled rectangle used as a click target.
type Button struct {
	*RectShape
	Label string
}

// NewButton creates a button centered on (cx, cy).
func NewButton(cx, cy, halfWidth, halfHeight float64, label string) *Button {
	return &Button{RectShape: NewRectAround(cx, cy, halfWidth, halfHeight), Label: label}
}

// Contains reports whether a click at p hits the button, edges included.
func (b *Button) Contains(p Point) bool {
	return PointInRect(p, b.RectShape)
}
