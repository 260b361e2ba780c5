// Package draw renders the arena into a terminal using ANSI escape sequences
// and half-block characters.
package draw

import (
	"fmt"
	"io"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Pen is the colour a canvas pixel is drawn with. The zero Pen is an empty pixel.
type Pen uint8

const (
	PenNone Pen = iota
	PenArena
	PenEnemy
	PenProjectile
	PenPlayer
)

// ANSI colour sequences.
const (
	ColorReset      = "\033[0m"
	ColorDim        = "\033[90m"
	ColorRed        = "\033[91m"
	ColorYellow     = "\033[93m"
	ColorBrightCyan = "\033[96m"
)

// fg and bg hold the foreground and background sequence for each pen.
var (
	fg = [...]string{
		PenNone:       "\033[39m",
		PenArena:      ColorDim,
		PenEnemy:      ColorRed,
		PenProjectile: ColorYellow,
		PenPlayer:     ColorBrightCyan,
	}
	bg = [...]string{
		PenNone:       "\033[49m",
		PenArena:      "\033[100m",
		PenEnemy:      "\033[101m",
		PenProjectile: "\033[103m",
		PenPlayer:     "\033[106m",
	}
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}
