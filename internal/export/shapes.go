package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

func addPolygon(z *vector.Rasterizer, pts []point) {
	if len(pts) == 0 {
		return
	}
	z.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
}

func translate(pts []point, d point) []point {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{p.x + d.x, p.y + d.y}
	}
	return out
}

func bounds(pts []point) (min, max point) {
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.x, min.y = math.Min(min.x, p.x), math.Min(min.y, p.y)
		max.x, max.y = math.Max(max.x, p.x), math.Max(max.y, p.y)
	}
	return min, max
}

func circle(c point, r float64, n int) []point {
	pts := make([]point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = point{c.x + r*math.Cos(a), c.y + r*math.Sin(a)}
	}
	return pts
}

func star(c point, outer, inner float64) []point {
	pts := make([]point, 10)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + math.Pi*float64(i)/5
		pts[i] = point{c.x + r*math.Cos(a), c.y + r*math.Sin(a)}
	}
	return pts
}

// roundedPolygon grows a convex polygon by r with round corners, the shape a
// round-joined stroke of width 2r around its outline covers. Each corner is
// approximated with segs segments.
func roundedPolygon(pts []point, r float64, segs int) []point {
	n := len(pts)
	area := 0.0
	for i, p := range pts {
		q := pts[(i+1)%n]
		area += p.x*q.y - q.x*p.y
	}
	normal := func(a, b point) float64 {
		dx, dy := b.x-a.x, b.y-a.y
		if area > 0 {
			return math.Atan2(-dx, dy)
		}
		return math.Atan2(dx, -dy)
	}

	out := make([]point, 0, n*(segs+1))
	for i, v := range pts {
		prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
		a1, a2 := normal(prev, v), normal(v, next)
		sweep := a2 - a1
		if area > 0 {
			for sweep < 0 {
				sweep += 2 * math.Pi
			}
		} else {
			for sweep > 0 {
				sweep -= 2 * math.Pi
			}
		}
		for k := 0; k <= segs; k++ {
			a := a1 + sweep*float64(k)/float64(segs)
			out = append(out, point{v.x + r*math.Cos(a), v.y + r*math.Sin(a)})
		}
	}
	return out
}

var everywhere = image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)

// linearGradient blends c0 at from into c1 at to.
type linearGradient struct {
	from, to point
	c0, c1   color.RGBA
}

func (g linearGradient) ColorModel() color.Model { return color.RGBAModel }
func (g linearGradient) Bounds() image.Rectangle { return everywhere }

func (g linearGradient) At(x, y int) color.Color {
	dx, dy := g.to.x-g.from.x, g.to.y-g.from.y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = ((float64(x)+0.5-g.from.x)*dx + (float64(y)+0.5-g.from.y)*dy) / l2
		t = math.Max(0, math.Min(1, t))
	}
	lerp := func(a, b uint8) uint8 { return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t)) }
	return color.RGBA{R: lerp(g.c0.R, g.c1.R), G: lerp(g.c0.G, g.c1.G), B: lerp(g.c0.B, g.c1.B), A: lerp(g.c0.A, g.c1.A)}
}

// radialGlow is a soft white light fading out at 70% of its radius.
type radialGlow struct {
	cx, cy, radius float64
}

func (g radialGlow) ColorModel() color.Model { return color.NRGBAModel }
func (g radialGlow) Bounds() image.Rectangle { return everywhere }

func (g radialGlow) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy) / g.radius
	if d >= 0.7 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: uint8(64 * (1 - d/0.7))}
}
