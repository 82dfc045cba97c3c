package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const eps = 1e-9

func TestRotatePoint(t *testing.T) {
	points := []Point{Pt(0, 0), Pt(3, 4), Pt(-12.5, 7.25), Pt(1e3, -1e3)}
	centers := []Point{Pt(0, 0), Pt(1, 1), Pt(-50, 20)}

	t.Run("zero angle is identity", func(t *testing.T) {
		for _, p := range points {
			for _, c := range centers {
				assert.Equal(t, p, RotatePoint(p, 0, c))
			}
		}
	})

	t.Run("full turn returns to start", func(t *testing.T) {
		for _, p := range points {
			for _, c := range centers {
				got := RotatePoint(p, 360, c)
				assert.InDelta(t, p.X, got.X, 1e-9)
				assert.InDelta(t, p.Y, got.Y, 1e-9)
			}
		}
	})

	t.Run("quarter turn is counterclockwise", func(t *testing.T) {
		got := RotatePoint(Pt(2, 1), 90, Pt(1, 1))
		assert.InDelta(t, 1.0, got.X, eps)
		assert.InDelta(t, 2.0, got.Y, eps)

		got = RotatePoint(Pt(2, 1), -90, Pt(1, 1))
		assert.InDelta(t, 1.0, got.X, eps)
		assert.InDelta(t, 0.0, got.Y, eps)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		p, c := Pt(5, 6), Pt(1, 2)
		_ = RotatePoint(p, 33, c)
		assert.Equal(t, Pt(5, 6), p)
		assert.Equal(t, Pt(1, 2), c)
	})
}

func TestRegularPolygon(t *testing.T) {
	t.Run("square around origin", func(t *testing.T) {
		pts, err := RegularPolygon(Pt(0, 0), 10, 4)
		require.NoError(t, err)
		require.Len(t, pts, 4)
		for _, p := range pts {
			assert.InDelta(t, 10.0, Distance(p, Pt(0, 0)), eps)
		}
		assert.Equal(t, Pt(10, 0), pts[0])
		assert.InDelta(t, 10.0, pts[1].Y, eps)
	})

	t.Run("vertices are evenly spaced for any n", func(t *testing.T) {
		center := Pt(3, -2)
		for _, n := range []int{3, 5, 7, 11, 16} {
			pts, err := RegularPolygon(center, 4, n)
			require.NoError(t, err)
			require.Len(t, pts, n)

			side := Distance(pts[0], pts[1])
			for i := range pts {
				next := pts[(i+1)%n]
				assert.InDelta(t, side, Distance(pts[i], next), 1e-9, "n=%d edge %d", n, i)
				assert.InDelta(t, 4.0, Distance(pts[i], center), 1e-9)
			}
		}
	})

	t.Run("one more step closes the polygon", func(t *testing.T) {
		center := Pt(-7, 12)
		for _, n := range []int{3, 7, 9, 13, 360} {
			pts, err := RegularPolygon(center, 25, n)
			require.NoError(t, err)

			back := RotatePoint(pts[n-1], 360/float64(n), center)
			closes := scalar.EqualWithinAbs(back.X, pts[0].X, 1e-9) &&
				scalar.EqualWithinAbs(back.Y, pts[0].Y, 1e-9)
			assert.True(t, closes, "n=%d ends at %v", n, back)
		}
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := RegularPolygon(Pt(0, 0), 10, 2)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = RegularPolygon(Pt(0, 0), 0, 5)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = RegularPolygon(Pt(0, 0), -1, 5)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = RegularPolygon(Pt(0, 0), math.NaN(), 5)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestLegacyRegularPolygon(t *testing.T) {
	t.Run("divisor of 360 closes", func(t *testing.T) {
		pts, err := LegacyRegularPolygon(Pt(0, 0), 10, 4)
		require.NoError(t, err)
		require.Len(t, pts, 4)

		// first emitted vertex is already rotated by one step
		assert.InDelta(t, 0.0, pts[0].X, eps)
		assert.InDelta(t, 10.0, pts[0].Y, eps)
		assert.InDelta(t, 10.0, pts[3].X, eps)
		assert.InDelta(t, 0.0, pts[3].Y, eps)
	})

	t.Run("non divisor drifts", func(t *testing.T) {
		pts, err := LegacyRegularPolygon(Pt(0, 0), 10, 7)
		require.NoError(t, err)
		require.Len(t, pts, 7)

		// round(360/7) = 51, so the last vertex stops at 357 degrees.
		last := pts[6]
		angle := math.Atan2(last.Y, last.X) * 180 / math.Pi
		assert.InDelta(t, -3.0, angle, 1e-6)

		exact, err := RegularPolygon(Pt(0, 0), 10, 7)
		require.NoError(t, err)
		assert.Greater(t, Distance(last, exact[0]), 0.1)
	})

	t.Run("half degree steps round to even", func(t *testing.T) {
		// 360/16 = 22.5 rounds to 22
		pts, err := LegacyRegularPolygon(Pt(0, 0), 1, 16)
		require.NoError(t, err)
		angle := math.Atan2(pts[0].Y, pts[0].X) * 180 / math.Pi
		assert.InDelta(t, 22.0, angle, 1e-9)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := LegacyRegularPolygon(Pt(0, 0), 1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
