package system

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/bounce/internal/config"
	"github.com/zeusync/bounce/internal/core/events/bus"
	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/core/palette"
	"github.com/zeusync/bounce/internal/core/systems/physics"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func newTestWorld(t *testing.T, halfWidth float64, b bus.EventBus) *World {
	t.Helper()
	w, err := NewWorld(halfWidth, b, log.Nop())
	require.NoError(t, err)
	return w
}

func TestNewWorldRejectsEmptyArena(t *testing.T) {
	_, err := NewWorld(0, nil, nil)
	assert.ErrorIs(t, err, physics.ErrInvalidArgument)
}

func TestAddBodyDuplicate(t *testing.T) {
	w := newTestWorld(t, 10, nil)
	_, err := w.AddBody("a", physics.Pt(0, 0), 1, physics.Vel(0, 0), BoundaryReflect, white)
	require.NoError(t, err)
	_, err = w.AddBody("a", physics.Pt(1, 1), 1, physics.Vel(0, 0), BoundaryReflect, white)
	assert.Error(t, err)
	_, err = w.AddBody("b", physics.Pt(1, 1), -1, physics.Vel(0, 0), BoundaryReflect, white)
	assert.ErrorIs(t, err, physics.ErrInvalidArgument)
}

func TestStepReflectsOffWall(t *testing.T) {
	b := bus.New()
	var got []Contact
	_, err := b.Subscribe(EventReflect, func(e bus.Event) error {
		got = append(got, e.Data().(Contact))
		return nil
	})
	require.NoError(t, err)

	w := newTestWorld(t, 10, b)
	body, err := w.AddBody("ball", physics.Pt(9, 0), 1, physics.Vel(3, 0), BoundaryReflect, white)
	require.NoError(t, err)

	contacts := w.Step()
	require.Len(t, contacts, 1)
	assert.Equal(t, physics.Pt(10, 0), body.Shape.Center())
	assert.Equal(t, physics.Vel(-3, 0), body.Velocity)

	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].Tick)
	assert.Equal(t, "ball", got[0].BodyID)
	assert.Equal(t, physics.Pt(12, 0), got[0].Before)
	assert.Equal(t, physics.Pt(10, 0), got[0].After)
	assert.Equal(t, physics.Vel(3, 0), got[0].VBefore)

	assert.Empty(t, w.Step(), "moving back inside is quiet")
	assert.Equal(t, physics.Pt(7, 0), body.Shape.Center())
}

func TestStepWrapsAround(t *testing.T) {
	w := newTestWorld(t, 10, nil)
	body, err := w.AddBody("ball", physics.Pt(9, -9), 1, physics.Vel(3, -3), BoundaryWrap, white)
	require.NoError(t, err)

	contacts := w.Step()
	require.Len(t, contacts, 1)
	assert.Equal(t, EventWrap, contacts[0].Kind)
	assert.Equal(t, physics.Pt(-8, 8), body.Shape.Center())
	assert.Equal(t, physics.Vel(3, -3), body.Velocity)
}

func TestStepBouncesOffPaddle(t *testing.T) {
	w := newTestWorld(t, 100, nil)
	w.AddObstacle("paddle", physics.NewRectAround(0, 0, 5, 0.5))
	body, err := w.AddBody("ball", physics.Pt(0, 3), 1, physics.Vel(0, -2), BoundaryReflect, white)
	require.NoError(t, err)

	contacts := w.Step()
	require.Len(t, contacts, 1)
	assert.Equal(t, EventObstacle, contacts[0].Kind)
	assert.Equal(t, "paddle", contacts[0].Obstacle)
	assert.Equal(t, physics.Pt(0, 1.5), body.Shape.Center())
	assert.Equal(t, physics.Vel(0, 2), body.Velocity)
}

func TestStepSurvivesHandlerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := bus.New()
	_, _ = b.Subscribe(EventReflect, func(e bus.Event) error { return errors.New("renderer gone") })

	w, err := NewWorld(10, b, log.NewWithZap(zap.New(core)))
	require.NoError(t, err)
	_, err = w.AddBody("ball", physics.Pt(10, 0), 1, physics.Vel(1, 0), BoundaryReflect, white)
	require.NoError(t, err)

	assert.Len(t, w.Step(), 1)
	assert.Equal(t, uint64(1), w.Tick())
	assert.Equal(t, 1, logs.FilterMessage("contact handler failed").Len())
}

func TestRunUntilCancelled(t *testing.T) {
	w := newTestWorld(t, 10, nil)
	_, err := w.AddBody("ball", physics.Pt(0, 0), 1, physics.Vel(1, 1), BoundaryReflect, white)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, time.Millisecond) }()

	require.Eventually(t, func() bool { return w.Tick() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Error(t, w.Run(context.Background(), 0))
}

func TestNewFromConfigAndSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Polygons = []config.PolygonConfig{
		{X: 0, Y: 0, Radius: 10, Sides: 6},
		{X: 5, Y: 5, Radius: 3, Sides: 7, Legacy: true},
	}

	w, err := NewFromConfig(cfg, nil, log.Nop(), palette.NewSeeded(1))
	require.NoError(t, err)

	s := w.Snapshot()
	assert.Equal(t, uint64(0), s.Tick)
	assert.Equal(t, cfg.Arena.HalfWidth, s.HalfWidth)
	require.Len(t, s.Bodies, 1)
	assert.Equal(t, "ball-1", s.Bodies[0].ID)
	assert.Equal(t, 50.0, s.Bodies[0].Y)
	assert.Len(t, s.Bodies[0].Color, 7)
	require.Len(t, s.Obstacles, 1)
	assert.Equal(t, -40.0, s.Obstacles[0].X1)
	assert.Equal(t, -154.0, s.Obstacles[0].Y1)
	require.Len(t, s.Polygons, 2)
	assert.Len(t, s.Polygons[0], 6)
	assert.Len(t, s.Polygons[1], 7)

	w.Step()
	s = w.Snapshot()
	assert.Equal(t, uint64(1), s.Tick)
	assert.Equal(t, 3.0, s.Bodies[0].X)
	assert.Equal(t, 48.0, s.Bodies[0].Y)
}

func TestNewFromConfigRejectsBadBoundary(t *testing.T) {
	cfg := config.Default()
	cfg.Balls[0].Boundary = "stick"
	_, err := NewFromConfig(cfg, nil, nil, palette.NewSeeded(1))
	assert.Error(t, err)
}
