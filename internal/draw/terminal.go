package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter batches a frame's text overlay and cursor moves, then sends it in
// network-sized pieces. Positions are relative to a text area placed on the
// terminal with SetArea; text falling outside the area is clipped.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte

	offCol, offRow int
	width, height  int // Zero means unbounded
}

// NewChunkWriter creates a ChunkWriter writing to w with an unbounded area at
// the given offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetArea places the text area at the given terminal offset with the given size.
func (cw *ChunkWriter) SetArea(offsetCol, offsetRow, width, height int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
	cw.width, cw.height = width, height
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString("\033[H\033[2J")
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends raw bytes, escape sequences included, without clipping.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s at (col, row) and returns the span actually drawn: its first
// column and its length in cells. A fully clipped write returns n == 0.
// s is treated as one cell per byte.
func (cw *ChunkWriter) WriteAt(col, row int, s string) (start, n int) {
	if row < 1 || (cw.height > 0 && row > cw.height) {
		return col, 0
	}
	if col < 1 {
		if 1-col >= len(s) {
			return 1, 0
		}
		s = s[1-col:]
		col = 1
	}
	if cw.width > 0 {
		if col > cw.width {
			return col, 0
		}
		if end := cw.width - col + 1; len(s) > end {
			s = s[:end]
		}
	}
	if s == "" {
		return col, 0
	}
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
	return col, len(s)
}

// WritePadded writes s left-aligned in a field of width cells, so a shorter
// value overwrites whatever a longer one left behind.
func (cw *ChunkWriter) WritePadded(col, row int, s string, width int) (start, n int) {
	if pad := width - len(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return cw.WriteAt(col, row, s)
}

// Len returns the number of buffered bytes not yet flushed.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the buffered frame in pieces of at most maxChunkSize bytes and
// resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		if err := cw.bufw.Flush(); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc returns the current terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's own terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
