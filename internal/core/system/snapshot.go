package system

import (
	"github.com/zeusync/bounce/internal/core/palette"
)

// Snapshot is a read-only copy of the world taken between ticks.
type Snapshot struct {
	Tick      uint64          `json:"tick"`
	HalfWidth float64         `json:"half_width"`
	Bodies    []BodyState     `json:"bodies"`
	Obstacles []ObstacleState `json:"obstacles"`
	Polygons  [][]Vertex      `json:"polygons,omitempty"`
}

type BodyState struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Color  string  `json:"color"`
}

type ObstacleState struct {
	ID string  `json:"id"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot copies the current state under the read lock.
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s := Snapshot{
		Tick:      w.tick,
		HalfWidth: w.halfWidth,
		Bodies:    make([]BodyState, len(w.bodies)),
		Obstacles: make([]ObstacleState, len(w.obstacles)),
	}
	for i, b := range w.bodies {
		c := b.Shape.Center()
		s.Bodies[i] = BodyState{
			ID:     b.ID,
			X:      c.X,
			Y:      c.Y,
			Radius: b.Shape.Radius(),
			VX:     b.Velocity.SX,
			VY:     b.Velocity.SY,
			Color:  palette.Hex(b.Color),
		}
	}
	for i, o := range w.obstacles {
		p1, p2 := o.Rect.P1(), o.Rect.P2()
		s.Obstacles[i] = ObstacleState{ID: o.ID, X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}
	}
	for _, p := range w.polygons {
		verts := p.Vertices()
		out := make([]Vertex, len(verts))
		for i, v := range verts {
			out[i] = Vertex{X: v.X, Y: v.Y}
		}
		s.Polygons = append(s.Polygons, out)
	}
	return s
}
