// Package display holds the Chip-8 screen: a 64x32 grid of pixels that are
// either on or off. Sprites are XORed onto it and wrap around both edges.
//
// The screen knows nothing about windows or pixels on a monitor. A renderer
// takes a Frame once per output frame and paints it however it likes.
package display

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"
)

const (
	Width  = 64
	Height = 32
)

// ErrInvalidSurface is returned by Scale for a surface that is not an
// integer multiple of the screen size.
var ErrInvalidSurface = errors.New("invalid display surface")

// Frame is a copy of the screen contents. The screen uses a top-left
// coordinate space, so Frame[0][0] is the top-left pixel.
type Frame [Height][Width]bool

// Screen is the Chip-8 video memory.
type Screen struct {
	frame Frame
	// dirty is set by every change and cleared by Frame.
	dirty bool
}

// New returns a blank screen.
func New() *Screen {
	return &Screen{dirty: true}
}

// Clear turns every pixel off.
func (s *Screen) Clear() {
	s.frame = Frame{}
	s.dirty = true
}

// Draw XORs an 8 pixel wide sprite onto the screen with its top-left corner
// at x,y. Each byte of sprite is one row, the highest bit being the leftmost
// pixel. Pixels that fall off the right or bottom edge wrap around to the
// opposite edge.
//
// Draw returns true if any pixel that was on got turned off.
func (s *Screen) Draw(x, y byte, sprite []byte) bool {
	var erased bool
	for row, bits := range sprite {
		py := (int(y) + row) % Height
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % Width
			if s.frame[py][px] {
				erased = true
			}
			s.frame[py][px] = !s.frame[py][px]
		}
	}
	s.dirty = true
	return erased
}

// Pixel returns whether the pixel at x,y is on. Coordinates wrap.
func (s *Screen) Pixel(x, y int) bool {
	return s.frame[wrap(y, Height)][wrap(x, Width)]
}

// Snapshot returns a copy of the screen without touching the changed flag.
func (s *Screen) Snapshot() Frame {
	return s.frame
}

// Frame returns a copy of the screen and whether it changed since the
// previous call to Frame.
func (s *Screen) Frame() (Frame, bool) {
	dirty := s.dirty
	s.dirty = false
	return s.frame, dirty
}

func wrap(n, size int) int {
	n %= size
	if n < 0 {
		n += size
	}
	return n
}

// Scale returns how many surface pixels one screen pixel covers on a
// surface of the given size. The surface must be exactly twice as wide as
// it is tall, and its height a nonzero multiple of 32.
func Scale(width, height int) (int, error) {
	if height <= 0 || height%Height != 0 || width != 2*height {
		return 0, fmt.Errorf("%w: %dx%d is not a multiple of %dx%d",
			ErrInvalidSurface, width, height, Width, Height)
	}
	return height / Height, nil
}

// Pack returns the frame as 256 bytes, 8 per row, highest bit leftmost.
func (f Frame) Pack() []byte {
	packed := make([]byte, Width/8*Height)
	for y := range f {
		for x, on := range f[y] {
			if on {
				packed[y*Width/8+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return packed
}

// Digest returns a hash of the frame contents, handy for telling two
// screens apart without comparing every pixel.
func (f Frame) Digest() string {
	h1, h2 := murmur3.Sum128(f.Pack())
	var sum [16]byte
	binary.BigEndian.PutUint64(sum[:8], h1)
	binary.BigEndian.PutUint64(sum[8:], h2)
	return fmt.Sprintf("%x", sum)
}

// String draws the frame as text, '*' for lit pixels, inside a border.
func (f Frame) String() string {
	var b strings.Builder
	border := "+" + strings.Repeat("-", Width) + "+\n"

	b.WriteString(border)
	for _, row := range f {
		b.WriteByte('|')
		for _, px := range row {
			if px {
				b.WriteByte('*')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
