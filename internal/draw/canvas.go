package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/arena/internal/physics"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// cell is what one terminal character shows: two stacked sub-pixels.
type cell struct {
	top, bottom Pen
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps arena coordinates (origin at the centre, y up) onto the terminal with a
// uniform scale so the whole arena is visible.
//
// Render only emits cells that changed since the previous Render, so the caller
// must not clear the screen between frames unless it also calls ForceRedraw.
type Canvas struct {
	termWidth      int   // Terminal columns covered by the canvas
	termHeight     int   // Terminal rows covered by the canvas
	subPixelHeight int   // termHeight * 2
	pixels         []Pen // Flat slice: [y * termWidth + x]

	prev       []cell // What the terminal currently shows, per cell
	dirty      []bool // Cells overwritten by text since the last Render
	fullRedraw bool

	arenaRadius float64
	scale       float64 // Sub-pixels per arena unit, same on both axes
	centerX     float64 // Sub-pixel position of the arena origin
	centerY     float64

	// 0-based terminal offsets of the canvas' top-left corner.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas covering termWidth x termHeight cells that shows an
// arena of the given radius.
func NewCanvas(termWidth, termHeight int, arenaRadius float64) *Canvas {
	c := &Canvas{arenaRadius: arenaRadius}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions and rescales the arena to fit.
// A change in size forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Pen, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
		c.fullRedraw = true
	}

	span := max(min(c.termWidth, c.subPixelHeight)-1, 1)
	c.scale = 1
	if c.arenaRadius > 0 {
		c.scale = float64(span) / (2 * c.arenaRadius)
	}
	c.centerX = float64(c.termWidth-1) / 2
	c.centerY = float64(c.subPixelHeight-1) / 2
}

// SetOffset sets the column and row offset for centering the canvas.
// The canvas starts at terminal position (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.fullRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every non-empty cell.
// Call it after clearing the terminal.
func (c *Canvas) ForceRedraw() {
	c.fullRedraw = true
}

// MarkTextDirty records that n cells starting at canvas position (col, row), 1-based,
// were overwritten with text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.dirty[r*c.termWidth+x] = true
	}
}

// toPixel maps an arena position to fractional sub-pixel coordinates.
func (c *Canvas) toPixel(p physics.Vec2) (float64, float64) {
	return c.centerX + p.X*c.scale, c.centerY - p.Y*c.scale
}

func (c *Canvas) setPixel(x, y int, pen Pen) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = pen
	}
}

// Plot sets the pixel under an arena position.
func (c *Canvas) Plot(p physics.Vec2, pen Pen) {
	x, y := c.toPixel(p)
	c.setPixel(int(math.Round(x)), int(math.Round(y)), pen)
}

// FillCircle draws a filled disc. Discs smaller than a pixel still light one pixel.
func (c *Canvas) FillCircle(center physics.Vec2, radius float64, pen Pen) {
	c.Plot(center, pen)

	cx, cy := c.toPixel(center)
	pr := radius * c.scale
	if pr < 0.5 {
		return
	}
	r2 := pr * pr
	for y := int(math.Floor(cy - pr)); y <= int(math.Ceil(cy+pr)); y++ {
		dy := float64(y) - cy
		for x := int(math.Floor(cx - pr)); x <= int(math.Ceil(cx+pr)); x++ {
			dx := float64(x) - cx
			if dx*dx+dy*dy <= r2 {
				c.setPixel(x, y, pen)
			}
		}
	}
}

// StrokeCircle draws a circle outline. Circles under a pixel across are filled instead.
func (c *Canvas) StrokeCircle(center physics.Vec2, radius float64, pen Pen) {
	pr := radius * c.scale
	if pr < 1 {
		c.FillCircle(center, radius, pen)
		return
	}
	cx, cy := c.toPixel(center)
	steps := int(math.Ceil(4 * math.Pi * pr))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + pr*math.Cos(a)
		y := cy - pr*math.Sin(a)
		c.setPixel(int(math.Round(x)), int(math.Round(y)), pen)
	}
}

// WorldToTerminal converts an arena position to a 1-based canvas cell (col, row),
// for placing text overlays next to drawn objects.
func (c *Canvas) WorldToTerminal(p physics.Vec2) (col, row int) {
	x, y := c.toPixel(p)
	px := int(math.Round(x))
	py := int(math.Round(y))
	return px + 1, int(math.Floor(float64(py)/2)) + 1
}

// Render writes every cell that changed since the last Render to w using
// half-block characters and ANSI colours.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	var curFg, curBg Pen = PenNone, PenNone
	colorsKnown := false
	lastCol, lastRow := -2, -2

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			now := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}

			if c.fullRedraw {
				if now == (cell{}) {
					c.prev[i] = now
					c.dirty[i] = false
					continue
				}
			} else if !c.dirty[i] && c.prev[i] == now {
				continue
			}
			c.prev[i] = now
			c.dirty[i] = false

			var ch rune
			wantFg, wantBg := now.top, PenNone
			switch {
			case now.top == PenNone && now.bottom == PenNone:
				ch = BlockEmpty
			case now.top == now.bottom:
				ch = BlockFull
			case now.bottom == PenNone:
				ch = BlockUpperHalf
			case now.top == PenNone:
				ch = BlockLowerHalf
				wantFg = now.bottom
			default:
				ch = BlockUpperHalf
				wantBg = now.bottom
			}

			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col, row)
			}
			if !colorsKnown || (ch != BlockEmpty && wantFg != curFg) {
				c.renderBuf.WriteString(fg[wantFg])
				curFg = wantFg
			}
			if !colorsKnown || wantBg != curBg {
				c.renderBuf.WriteString(bg[wantBg])
				curBg = wantBg
			}
			colorsKnown = true
			c.renderBuf.WriteRune(ch)
			lastCol, lastRow = col, row
		}
	}
	c.fullRedraw = false

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(ColorReset)

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// moveCursor appends a cursor move to the 0-based canvas cell (col, row).
func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}
