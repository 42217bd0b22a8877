package raster

import (
	"bytes"
	"math"
	"testing"
)

func TestFillStopsAtBoundary(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	black := Palette[7]
	for y := 0; y < 10; y++ {
		s.WritePixel(5, y, black)
	}

	if n := s.Fill(1, 1, blue); n != 50 {
		t.Fatalf("Fill changed %d pixels, want 50", n)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := Transparent
			switch {
			case x < 5:
				want = blue
			case x == 5:
				want = black
			}
			if got := s.ReadPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillIsFourConnected(t *testing.T) {
	s := newTestSurface(t, 4, 4)
	s.WritePixel(0, 0, red)
	s.WritePixel(1, 1, red)

	if n := s.Fill(0, 0, blue); n != 1 {
		t.Fatalf("Fill changed %d pixels, want 1", n)
	}
	if got := s.ReadPixel(1, 1); got != red {
		t.Errorf("diagonal neighbour = %v, want red", got)
	}
}

func TestFillRequiresExactMatch(t *testing.T) {
	s := newTestSurface(t, 3, 1)
	s.WritePixel(0, 0, red)
	s.WritePixel(1, 0, RGBA{R: 0xFF, A: 0xFE})
	s.WritePixel(2, 0, red)

	if n := s.Fill(0, 0, blue); n != 1 {
		t.Fatalf("Fill changed %d pixels, want 1", n)
	}
	if got := s.ReadPixel(2, 0); got != red {
		t.Errorf("pixel beyond near-match = %v, want red", got)
	}
}

func TestFillSameColorIsNoop(t *testing.T) {
	s := newTestSurface(t, 20, 20)
	r := NewStrokeRenderer(s)
	r.Begin(Point{X: 5, Y: 5}, Pen{Color: red, Width: 6})
	r.Extend(Point{X: 15, Y: 15})
	r.End()

	before := s.Pix()
	if n := s.Fill(10, 10, red); n != 0 {
		t.Errorf("Fill changed %d pixels, want 0", n)
	}
	if !bytes.Equal(before, s.Pix()) {
		t.Error("Fill with the seed color modified the buffer")
	}
}

func TestFillForcesOpaque(t *testing.T) {
	s := newTestSurface(t, 5, 5)
	// Transparent black and opaque black share RGB; the fill must still run.
	if n := s.Fill(2, 2, RGBA{}); n != 25 {
		t.Fatalf("Fill changed %d pixels, want 25", n)
	}
	if got := s.ReadPixel(0, 0); got != Palette[7] {
		t.Errorf("pixel = %v, want opaque black", got)
	}
}

func TestFillOutOfBoundsIsNoop(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	for _, p := range []struct{ x, y int }{{-5, -5}, {10, 0}, {0, 10}} {
		if n := s.Fill(p.x, p.y, red); n != 0 {
			t.Errorf("Fill(%d,%d) changed %d pixels", p.x, p.y, n)
		}
	}
	if n := s.FillAt(Point{X: -5, Y: -5}, red); n != 0 {
		t.Errorf("FillAt(-5,-5) changed %d pixels", n)
	}
	if n := s.FillAt(Point{X: 10.5, Y: 3}, red); n != 0 {
		t.Errorf("FillAt(10.5,3) changed %d pixels", n)
	}
	assertAllTransparent(t, s)
}

func TestFillLargeRegion(t *testing.T) {
	s := newTestSurface(t, 1000, 1000)
	if n := s.Fill(500, 500, green); n != 1000*1000 {
		t.Fatalf("Fill changed %d pixels, want %d", n, 1000*1000)
	}
}

func TestFillAtScalesSeed(t *testing.T) {
	s, _ := NewSurface(10, 10, 2)
	for y := 0; y < 20; y++ {
		s.WritePixel(10, y, red)
	}
	// Logical x=5.2 lands on device column 10, the red wall.
	if n := s.FillAt(Point{X: 5.2, Y: 1}, blue); n != 20 {
		t.Fatalf("FillAt changed %d pixels, want 20", n)
	}
}

func TestFillAtIgnoresNaN(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	for _, p := range []Point{{X: math.NaN(), Y: 1}, {X: 1, Y: math.NaN()}} {
		if n := s.FillAt(p, blue); n != 0 {
			t.Errorf("FillAt(%v) changed %d pixels, want 0", p, n)
		}
	}
	assertAllTransparent(t, s)
}

// A red diagonal band drawn through five points is recoloured as a whole by
// a single fill, and the transparent background is left alone.
func TestStrokeThenFillScenario(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	r := NewStrokeRenderer(s)
	r.Begin(Point{X: 10, Y: 10}, Pen{Color: red, Width: 10})
	for _, p := range []Point{{X: 30, Y: 30}, {X: 50, Y: 50}, {X: 70, Y: 70}, {X: 90, Y: 90}} {
		r.Extend(p)
	}
	r.End()

	reds, clear := 0, 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			switch s.ReadPixel(x, y) {
			case red:
				reds++
			case Transparent:
				clear++
			default:
				t.Fatalf("unexpected color at (%d,%d)", x, y)
			}
		}
	}
	if s.ReadPixel(50, 50) != red || s.ReadPixel(5, 95) != Transparent {
		t.Fatal("band not where expected")
	}

	if n := s.Fill(50, 50, blue); n != reds {
		t.Fatalf("Fill changed %d pixels, want %d", n, reds)
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if s.ReadPixel(x, y) == red {
				t.Fatalf("pixel (%d,%d) still red", x, y)
			}
		}
	}
	left := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if s.ReadPixel(x, y) == Transparent {
				left++
			}
		}
	}
	if left != clear {
		t.Errorf("transparent pixels = %d, want %d", left, clear)
	}
}
