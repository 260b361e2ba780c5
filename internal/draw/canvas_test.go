package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/arena/internal/physics"
)

func (c *Canvas) pixel(x, y int) Pen {
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) countSet() int {
	n := 0
	for _, p := range c.pixels {
		if p != PenNone {
			n++
		}
	}
	return n
}

// newTestCanvas is 41x21 cells (41x42 sub-pixels) showing an arena of radius 10,
// which gives a scale of exactly 2 sub-pixels per unit.
func newTestCanvas() *Canvas {
	return NewCanvas(41, 21, 10)
}

func TestCanvasScalesArenaToFit(t *testing.T) {
	c := newTestCanvas()
	assert.Equal(t, 2.0, c.scale)

	c.Resize(200, 10)
	assert.Equal(t, 19.0/20, c.scale, "height limits the scale")
}

func TestPlotUsesYUp(t *testing.T) {
	c := newTestCanvas()

	c.Plot(physics.Vec2{X: 0, Y: 5}, PenPlayer)
	c.Plot(physics.Vec2{X: 5, Y: 0}, PenEnemy)

	assert.Equal(t, PenPlayer, c.pixel(20, 11))
	assert.Equal(t, PenEnemy, c.pixel(30, 21))
	assert.Equal(t, 2, c.countSet())
}

func TestPlotOutsideCanvasIsIgnored(t *testing.T) {
	c := newTestCanvas()

	c.Plot(physics.Vec2{X: 100, Y: -100}, PenPlayer)

	assert.Zero(t, c.countSet())
}

func TestFillCircle(t *testing.T) {
	t.Run("tiny discs light one pixel", func(t *testing.T) {
		c := newTestCanvas()
		c.FillCircle(physics.Vec2{}, 0.1, PenProjectile)
		assert.Equal(t, 1, c.countSet())
	})

	t.Run("discs cover their area", func(t *testing.T) {
		c := newTestCanvas()
		c.FillCircle(physics.Vec2{}, 2, PenPlayer)

		// radius 4 sub-pixels around (20, 20.5)
		n := c.countSet()
		assert.Greater(t, n, 40)
		assert.Less(t, n, 60)
		assert.Equal(t, PenPlayer, c.pixel(20, 20))
		assert.Equal(t, PenPlayer, c.pixel(20, 21))
		assert.Equal(t, PenNone, c.pixel(26, 20))
	})
}

func TestStrokeCircleDrawsRing(t *testing.T) {
	c := newTestCanvas()

	c.StrokeCircle(physics.Vec2{}, 10, PenArena)

	assert.Equal(t, PenArena, c.pixel(40, 21), "rightmost point")
	assert.Equal(t, PenNone, c.pixel(20, 20), "centre stays empty")
}

func TestWorldToTerminal(t *testing.T) {
	c := newTestCanvas()

	col, row := c.WorldToTerminal(physics.Vec2{})
	assert.Equal(t, 21, col)
	assert.Equal(t, 11, row)

	col, row = c.WorldToTerminal(physics.Vec2{X: -10, Y: 10})
	assert.Equal(t, 1, col)
	assert.Equal(t, 1, row)
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer

	c.Plot(physics.Vec2{}, PenPlayer) // sub-pixel (20, 21): lower half of cell row 10
	require.NoError(t, c.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "\033[11;21H")
	assert.Contains(t, out, string(BlockLowerHalf))
	assert.Contains(t, out, ColorBrightCyan)

	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Empty(t, buf.String(), "nothing changed")

	buf.Reset()
	c.Clear()
	require.NoError(t, c.Render(&buf))
	out = buf.String()
	assert.Contains(t, out, "\033[11;21H")
	assert.True(t, strings.HasSuffix(out, " "+ColorReset), "vacated cell is blanked")
}

func TestRenderMixesPensInOneCell(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer

	c.Plot(physics.Vec2{Y: 0.5}, PenPlayer) // sub-pixel (20, 20)
	c.Plot(physics.Vec2{}, PenEnemy)        // sub-pixel (20, 21)
	require.NoError(t, c.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, string(BlockUpperHalf))
	assert.Contains(t, out, ColorBrightCyan)
	assert.Contains(t, out, bg[PenEnemy])
	assert.True(t, strings.HasSuffix(out, ColorReset))
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))

	c.MarkTextDirty(3, 1, 2)
	buf.Reset()
	require.NoError(t, c.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "\033[1;3H")
	assert.Equal(t, 2, strings.Count(out, " "))
	assert.NotContains(t, out, "\033[2;")

	// out of range is ignored
	c.MarkTextDirty(1, 99, 5)
	c.MarkTextDirty(-5, 1, 2)
}

func TestForceRedrawRepaintsDrawnCells(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer
	c.Plot(physics.Vec2{}, PenPlayer)
	require.NoError(t, c.Render(&buf))

	c.ForceRedraw()
	buf.Reset()
	require.NoError(t, c.Render(&buf))

	assert.Contains(t, buf.String(), string(BlockLowerHalf))
	assert.NotContains(t, buf.String(), " ", "empty cells are not written after a clear")
}

func TestRenderOffsetsCursor(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(5, 2)
	var buf bytes.Buffer

	c.Plot(physics.Vec2{}, PenPlayer)
	require.NoError(t, c.Render(&buf))

	assert.Contains(t, buf.String(), "\033[13;26H")
	assert.Equal(t, 5, c.OffsetCol())
	assert.Equal(t, 2, c.OffsetRow())
}

func TestRenderChunksLargeFrames(t *testing.T) {
	c := NewCanvas(120, 40, 10)
	for y := 0; y < c.subPixelHeight; y++ {
		for x := 0; x < c.termWidth; x++ {
			c.setPixel(x, y, Pen(1+(x+y)%4))
		}
	}
	w := &recordingWriter{}

	require.NoError(t, c.Render(w))

	require.Greater(t, len(w.writes), 1)
	for _, n := range w.writes {
		assert.LessOrEqual(t, n, maxChunkSize)
	}
}
