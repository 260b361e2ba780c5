// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"bytes"
	"time"

	"github.com/tomz197/arena/internal/physics"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

const esc = '\x1b'

// maxEscapeLen caps how many bytes of an unfinished escape sequence are carried
// into the next frame.
const maxEscapeLen = 16

// Input represents the current frame's input state.
type Input struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Quit    bool
	Restart bool
	Start   bool
	Pressed []byte // Raw bytes read this frame
}

// MovementAxis returns the movement intent with y pointing up.
// Opposite keys cancel out.
func (in Input) MovementAxis() physics.Vec2 {
	var axis physics.Vec2
	if in.Right {
		axis.X++
	}
	if in.Left {
		axis.X--
	}
	if in.Up {
		axis.Y++
	}
	if in.Down {
		axis.Y--
	}
	return axis
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	left    time.Time
	right   time.Time
	up      time.Time
	down    time.Time
	quit    time.Time
	restart time.Time
	start   time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	closed  bool
	pending []byte // Unfinished escape sequence from the previous frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits and closes the channel when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// ReadInput drains all available bytes from the stream without blocking.
// Keys stay held for a short window so simultaneous presses combine.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

// ResetKeyInput forgets every held key, so a key that started a game does not
// leak into its first frames.
func ResetKeyInput(s *Stream) {
	s.drain()
	s.state = keyState{}
	s.pending = nil
}

// Closed reports whether the underlying reader has ended, e.g. the remote
// side of a session disconnected. It is only updated by ReadInput.
func (s *Stream) Closed() bool {
	return s.closed
}

func (s *Stream) read(now time.Time) Input {
	buf := s.drain()

	data := buf
	if len(s.pending) > 0 {
		data = append(s.pending, buf...)
		s.pending = nil
	}
	// A sequence split across frames waits for its remaining bytes. Once a
	// frame brings nothing new, whatever is left is read as typed, so a lone
	// Esc still quits.
	if len(buf) > 0 && !s.closed {
		var tail []byte
		data, tail = splitIncomplete(data)
		s.pending = append([]byte(nil), tail...)
	}
	s.apply(data, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Quit:    held(s.state.quit),
		Restart: held(s.state.restart),
		Start:   held(s.state.start),
		Pressed: buf,
	}
}

// drain collects every byte currently buffered in the channel.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// apply parses buf and updates the key state timestamps.
func (s *Stream) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <params> <final>. Only the arrow keys mean anything;
		// other sequences are swallowed whole.
		if b == esc && i+1 < len(buf) && buf[i+1] == '[' {
			j := i + 2
			for j < len(buf) && !isCSIFinal(buf[j]) {
				j++
			}
			if j < len(buf) && j == i+2 {
				applyArrow(&s.state, buf[j], now)
			}
			i = j
			continue
		}

		applyByteToState(&s.state, b, now)
	}
}

// splitIncomplete cuts a trailing ESC or unterminated CSI sequence off data.
func splitIncomplete(data []byte) (complete, tail []byte) {
	k := bytes.LastIndexByte(data, esc)
	if k < 0 || len(data)-k > maxEscapeLen {
		return data, nil
	}
	rest := data[k+1:]
	if len(rest) > 0 {
		if rest[0] != '[' {
			return data, nil
		}
		for _, c := range rest[1:] {
			if isCSIFinal(c) {
				return data, nil
			}
		}
	}
	return data[:k], data[k:]
}

func isCSIFinal(c byte) bool {
	return c >= 0x40 && c <= 0x7e
}

func applyArrow(state *keyState, code byte, now time.Time) {
	switch code {
	case 'A':
		state.up = now
	case 'B':
		state.down = now
	case 'C':
		state.right = now
	case 'D':
		state.left = now
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'w', 'W':
		state.up = now
	case 's', 'S':
		state.down = now
	case 'q', 'Q', esc, '\x03': // Esc, Ctrl+C
		state.quit = now
	case 'r', 'R':
		state.restart = now
	case ' ', '\n', '\r':
		state.start = now
	}
}
