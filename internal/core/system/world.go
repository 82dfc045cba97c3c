package system

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/zeusync/bounce/internal/core/events/bus"
	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/core/systems/physics"
)

// Event types published on the bus after each tick.
const (
	EventWrap     = "boundary.wrap"
	EventReflect  = "boundary.reflect"
	EventObstacle = "obstacle.reflect"
)

const eventSource = "world"

// Boundary selects what happens when a body leaves the arena.
type Boundary uint8

const (
	BoundaryReflect Boundary = iota
	BoundaryWrap
)

func (b Boundary) String() string {
	switch b {
	case BoundaryReflect:
		return "reflect"
	case BoundaryWrap:
		return "wrap"
	default:
		return fmt.Sprintf("boundary(%d)", uint8(b))
	}
}

// Body is a moving circle together with its velocity and edge policy.
type Body struct {
	ID       string
	Shape    *physics.CircleShape
	Velocity physics.Velocity
	Boundary Boundary
	Color    color.RGBA
}

// Obstacle is a static rectangle bodies bounce off.
type Obstacle struct {
	ID   string
	Rect *physics.RectShape
}

// Contact describes one boundary or obstacle event.
type Contact struct {
	Tick     uint64           `json:"tick"`
	Kind     string           `json:"kind"`
	BodyID   string           `json:"body_id"`
	Obstacle string           `json:"obstacle,omitempty"`
	Before   physics.Point    `json:"before"`
	After    physics.Point    `json:"after"`
	VBefore  physics.Velocity `json:"v_before"`
	VAfter   physics.Velocity `json:"v_after"`
}

// World is the arena [-HalfWidth, HalfWidth]^2 and everything in it.
// Step is meant to be driven from one goroutine; Snapshot may be called from any.
type World struct {
	mu        sync.RWMutex
	halfWidth float64
	tick      uint64
	bodies    []*Body
	obstacles []*Obstacle
	polygons  []*physics.PolygonShape

	bus    bus.EventBus
	logger log.Log
}

// NewWorld creates an empty arena. A nil bus disables event publishing.
func NewWorld(halfWidth float64, eventBus bus.EventBus, logger log.Log) (*World, error) {
	if !(halfWidth > 0) {
		return nil, fmt.Errorf("%w: arena half width must be positive, got %g", physics.ErrInvalidArgument, halfWidth)
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &World{
		halfWidth: halfWidth,
		bus:       eventBus,
		logger:    logger,
	}, nil
}

func (w *World) HalfWidth() float64 { return w.halfWidth }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tick
}

func (w *World) bodyCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// AddBody places a new circle in the arena.
func (w *World) AddBody(id string, center physics.Point, radius float64, v physics.Velocity, boundary Boundary, c color.RGBA) (*Body, error) {
	shape, err := physics.NewCircle(center, radius)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", id, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range w.bodies {
		if b.ID == id {
			return nil, fmt.Errorf("body %q already exists", id)
		}
	}
	body := &Body{ID: id, Shape: shape, Velocity: v, Boundary: boundary, Color: c}
	w.bodies = append(w.bodies, body)
	return body, nil
}

// AddObstacle adds a static rectangle. Its corners must be lower-left first.
func (w *World) AddObstacle(id string, rect *physics.RectShape) *Obstacle {
	w.mu.Lock()
	defer w.mu.Unlock()
	o := &Obstacle{ID: id, Rect: rect}
	w.obstacles = append(w.obstacles, o)
	return o
}

// AddPolygon adds a decorative polygon. Polygons take no part in collisions.
func (w *World) AddPolygon(p *physics.PolygonShape) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.polygons = append(w.polygons, p)
}

// Step advances the world by one tick and returns the contacts it produced.
//
// Each body is translated by its velocity, then its boundary policy is
// applied, then it is reflected off every obstacle in insertion order.
// Contacts are published after the world lock is released; handler errors
// are logged and never fail the step.
func (w *World) Step() []Contact {
	w.mu.Lock()
	w.tick++
	tick := w.tick
	var contacts []Contact
	for _, b := range w.bodies {
		contacts = w.stepBody(tick, b, contacts)
	}
	w.mu.Unlock()

	w.publish(contacts)
	return contacts
}

func (w *World) stepBody(tick uint64, b *Body, contacts []Contact) []Contact {
	b.Shape.Move(b.Velocity.SX, b.Velocity.SY)

	before, vBefore := b.Shape.Center(), b.Velocity
	switch b.Boundary {
	case BoundaryWrap:
		if physics.WrapBoundary(b.Shape, w.halfWidth) {
			contacts = append(contacts, Contact{
				Tick: tick, Kind: EventWrap, BodyID: b.ID,
				Before: before, After: b.Shape.Center(),
				VBefore: vBefore, VAfter: b.Velocity,
			})
		}
	default:
		b.Velocity = physics.ReflectBoundary(b.Shape, w.halfWidth, b.Velocity)
		if after := b.Shape.Center(); after != before || b.Velocity != vBefore {
			contacts = append(contacts, Contact{
				Tick: tick, Kind: EventReflect, BodyID: b.ID,
				Before: before, After: after,
				VBefore: vBefore, VAfter: b.Velocity,
			})
		}
	}

	for _, o := range w.obstacles {
		before, vBefore = b.Shape.Center(), b.Velocity
		b.Velocity = physics.ReflectRect(b.Shape, o.Rect, b.Velocity)
		if b.Velocity != vBefore {
			contacts = append(contacts, Contact{
				Tick: tick, Kind: EventObstacle, BodyID: b.ID, Obstacle: o.ID,
				Before: before, After: b.Shape.Center(),
				VBefore: vBefore, VAfter: b.Velocity,
			})
		}
	}
	return contacts
}

func (w *World) publish(contacts []Contact) {
	for _, c := range contacts {
		w.logger.Debug("contact",
			log.Uint64("tick", c.Tick),
			log.String("kind", c.Kind),
			log.String("body", c.BodyID),
			log.Float64("x", c.After.X),
			log.Float64("y", c.After.Y),
		)
	}
	if w.bus == nil || len(contacts) == 0 {
		return
	}

	events := make([]bus.Event, len(contacts))
	for i, c := range contacts {
		events[i] = bus.NewEvent(c.Kind, eventSource, c, nil)
	}
	if err := w.bus.PublishBatch(events...); err != nil {
		w.logger.Warn("contact handler failed", log.Error(err))
	}
}

// Run steps the world every interval until ctx is cancelled.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("world started",
		log.Duration("tick", interval),
		log.Float64("half_width", w.halfWidth),
		log.Int("bodies", w.bodyCount()),
	)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("world stopped", log.Uint64("ticks", w.Tick()))
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			w.Step()
		}
	}
}
