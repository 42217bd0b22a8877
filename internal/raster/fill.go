package raster

import "math"

// Fill replaces the 4-connected region around the seed (x, y), in device
// pixels, whose pixels exactly equal the seed's color with c at full
// opacity. It returns the number of pixels changed.
//
// Matching is exact on all four channels. Seeds outside the surface and
// fills with the seed's own color do nothing. The whole fill runs under the
// surface lock.
func (s *Surface) Fill(x, y int, c RGBA) int {
	c = c.Opaque()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inBounds(x, y) {
		return 0
	}
	target := s.pixel(s.offset(x, y))
	if target == c {
		return 0
	}

	w, h := s.Width(), s.Height()
	changed := 0
	stack := []int{y*w + x}
	for len(stack) > 0 {
		n := len(stack) - 1
		p := stack[n]
		stack = stack[:n]

		px, py := p%w, p/w
		i := s.offset(px, py)
		if s.pixel(i) != target {
			continue
		}
		s.setPixel(i, c)
		changed++

		if px+1 < w {
			stack = append(stack, p+1)
		}
		if px > 0 {
			stack = append(stack, p-1)
		}
		if py+1 < h {
			stack = append(stack, p+w)
		}
		if py > 0 {
			stack = append(stack, p-w)
		}
	}
	return changed
}

// FillAt is Fill with the seed given in logical pixels.
func (s *Surface) FillAt(p Point, c RGBA) int {
	d := s.DevicePoint(p)
	if d.X < 0 || d.Y < 0 || math.IsNaN(d.X) || math.IsNaN(d.Y) {
		return 0
	}
	return s.Fill(clampCoord(d.X, s.Width()), clampCoord(d.Y, s.Height()), c)
}
