package system

import (
	"fmt"

	"github.com/zeusync/bounce/internal/config"
	"github.com/zeusync/bounce/internal/core/events/bus"
	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/core/palette"
	"github.com/zeusync/bounce/internal/core/systems/physics"
)

// ParseBoundary maps a config policy name to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case config.BoundaryReflect, "":
		return BoundaryReflect, nil
	case config.BoundaryWrap:
		return BoundaryWrap, nil
	default:
		return BoundaryReflect, fmt.Errorf("unknown boundary policy %q", s)
	}
}

// NewFromConfig builds a populated world. Ball colours come from pal.
func NewFromConfig(cfg *config.Config, eventBus bus.EventBus, logger log.Log, pal *palette.Palette) (*World, error) {
	w, err := NewWorld(cfg.Arena.HalfWidth, eventBus, logger)
	if err != nil {
		return nil, err
	}

	for _, b := range cfg.Balls {
		boundary, err := ParseBoundary(b.Boundary)
		if err != nil {
			return nil, fmt.Errorf("ball %q: %w", b.ID, err)
		}
		_, err = w.AddBody(b.ID, physics.Pt(b.X, b.Y), b.Radius, physics.Vel(b.VX, b.VY), boundary, pal.RandColor())
		if err != nil {
			return nil, err
		}
	}

	for i, p := range cfg.Paddles {
		w.AddObstacle(fmt.Sprintf("paddle-%d", i), physics.NewRectAround(p.X, p.Y, p.HalfWidth, p.HalfHeight))
	}

	for i, p := range cfg.Polygons {
		build := physics.RegularPolygon
		if p.Legacy {
			build = physics.LegacyRegularPolygon
		}
		verts, err := build(physics.Pt(p.X, p.Y), p.Radius, p.Sides)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		poly, err := physics.NewPolygon(verts)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		w.AddPolygon(poly)
	}

	return w, nil
}
