package raster

import (
	"errors"
	"image"
	"math"
	"sync"
)

// ErrInvalidSize is returned when a surface would have no pixels.
var ErrInvalidSize = errors.New("raster: invalid surface size")

// Point is a position, in logical or device pixels depending on context.
type Point struct {
	X, Y float64
}

// Surface is the pixel buffer an ornament is drawn on.
//
// The buffer is allocated at device resolution: a 300x300 logical canvas on a
// display with a pixel ratio of 2 holds 600x600 pixels. Tool input arrives in
// logical pixels and is scaled once through DevicePoint before it touches the
// buffer.
type Surface struct {
	mu    sync.RWMutex
	img   *image.NRGBA
	ratio float64
}

// NewSurface allocates a fully transparent surface for a logical canvas of
// width x height pixels at the given device pixel ratio. A ratio of 0 means
// the display did not report one and is treated as 1.
func NewSurface(width, height int, ratio float64) (*Surface, error) {
	if ratio == 0 {
		ratio = 1
	}
	if width <= 0 || height <= 0 || ratio < 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, ErrInvalidSize
	}
	w := int(math.Floor(float64(width) * ratio))
	h := int(math.Floor(float64(height) * ratio))
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	return &Surface{
		img:   image.NewNRGBA(image.Rect(0, 0, w, h)),
		ratio: ratio,
	}, nil
}

// Width returns the width in device pixels.
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the height in device pixels.
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Ratio returns the device pixel ratio baked into the buffer.
func (s *Surface) Ratio() float64 {
	return s.ratio
}

// DevicePoint maps a logical point to device pixel space.
func (s *Surface) DevicePoint(p Point) Point {
	return Point{X: p.X * s.ratio, Y: p.Y * s.ratio}
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.img.Pix)
}

// ReadPixel returns the pixel at (x, y) in device pixels, or Transparent when
// the coordinate is outside the surface.
func (s *Surface) ReadPixel(x, y int) RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.inBounds(x, y) {
		return Transparent
	}
	return s.pixel(s.offset(x, y))
}

// WritePixel sets the pixel at (x, y) in device pixels. Writes outside the
// surface are ignored.
func (s *Surface) WritePixel(x, y int, c RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inBounds(x, y) {
		return
	}
	s.setPixel(s.offset(x, y), c)
}

// Image returns a copy of the buffer.
func (s *Surface) Image() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img := image.NewNRGBA(s.img.Rect)
	copy(img.Pix, s.img.Pix)
	return img
}

// Pix returns a copy of the raw buffer, 4 bytes per pixel in RGBA order.
func (s *Surface) Pix() []uint8 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pix := make([]uint8, len(s.img.Pix))
	copy(pix, s.img.Pix)
	return pix
}

// The helpers below assume the caller holds s.mu.

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.img.Rect.Dx() && y < s.img.Rect.Dy()
}

func (s *Surface) offset(x, y int) int {
	return y*s.img.Stride + x*4
}

func (s *Surface) pixel(i int) RGBA {
	p := s.img.Pix[i : i+4 : i+4]
	return RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (s *Surface) setPixel(i int, c RGBA) {
	p := s.img.Pix[i : i+4 : i+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = c.A
}
