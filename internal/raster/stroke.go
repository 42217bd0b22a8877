package raster

import "math"

// Mode selects how a stroke composites onto the surface.
type Mode int

const (
	// ModeBrush paints the pen color at full opacity over whatever is there.
	ModeBrush Mode = iota
	// ModeEraser clears every touched pixel back to transparent.
	ModeEraser
)

// minRadius keeps the thinnest pens wide enough to cover at least one pixel
// centre wherever the pointer lands.
const minRadius = math.Sqrt2 / 2

// Pen is the style a stroke is drawn with. Width is the diameter in logical
// pixels.
type Pen struct {
	Color RGBA
	Width float64
	Mode  Mode
}

// StrokeRenderer turns a sequence of pointer positions into a continuous
// round-capped, round-joined line on a surface.
type StrokeRenderer struct {
	surface *Surface
	pen     Pen
	last    Point // device pixels
	active  bool
}

func NewStrokeRenderer(s *Surface) *StrokeRenderer {
	return &StrokeRenderer{surface: s}
}

// Active reports whether a stroke is in progress.
func (r *StrokeRenderer) Active() bool {
	return r.active
}

// Begin starts a stroke at p (logical pixels) and paints a dot there so a
// single tap leaves a mark.
func (r *StrokeRenderer) Begin(p Point, pen Pen) {
	r.pen = pen
	r.last = r.surface.DevicePoint(p)
	r.active = true
	r.segment(r.last, r.last)
}

// Extend strokes the segment from the previous point to p. It is ignored
// when no stroke is active.
func (r *StrokeRenderer) Extend(p Point) {
	if !r.active {
		return
	}
	next := r.surface.DevicePoint(p)
	r.segment(r.last, next)
	r.last = next
}

// End terminates the current stroke.
func (r *StrokeRenderer) End() {
	r.active = false
}

// segment rasterises the capsule of radius width/2 around a-b. A pixel is
// covered when its centre lies inside the capsule; the union of capsules
// along a path gives round caps and round joins.
func (r *StrokeRenderer) segment(a, b Point) {
	s := r.surface
	radius := r.pen.Width * s.ratio / 2
	if radius < minRadius {
		radius = minRadius
	}

	c := r.pen.Color.Opaque()
	if r.pen.Mode == ModeEraser {
		c = Transparent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	x0 := clampCoord(math.Floor(math.Min(a.X, b.X)-radius), s.Width())
	x1 := clampCoord(math.Ceil(math.Max(a.X, b.X)+radius), s.Width())
	y0 := clampCoord(math.Floor(math.Min(a.Y, b.Y)-radius), s.Height())
	y1 := clampCoord(math.Ceil(math.Max(a.Y, b.Y)+radius), s.Height())

	r2 := radius * radius
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if distSqToSegment(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}, a, b) <= r2 {
				s.setPixel(s.offset(x, y), c)
			}
		}
	}
}

// distSqToSegment returns the squared distance from p to the segment a-b.
func distSqToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
		t = math.Max(0, math.Min(1, t))
	}
	qx := a.X + t*dx - p.X
	qy := a.Y + t*dy - p.Y
	return qx*qx + qy*qy
}

// clampCoord clamps v to [0, hi] before converting, so pointer positions far
// off the surface never overflow int.
func clampCoord(v float64, hi int) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}
