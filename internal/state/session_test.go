package state

import (
	"bytes"
	"errors"
	"testing"

	"DrawTreeOrnament/internal/raster"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(100, 100, 1)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func down(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerDown, Pos: raster.Point{X: x, Y: y}}
}

func move(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, Pos: raster.Point{X: x, Y: y}}
}

func up() PointerEvent { return PointerEvent{Kind: PointerUp} }

func TestSessionOpensWithDefaults(t *testing.T) {
	s := newTestSession(t)
	if got := s.Tools(); got != DefaultToolState() {
		t.Errorf("Tools() = %+v, want %+v", got, DefaultToolState())
	}
	if s.Tools().Active != ToolBrush {
		t.Errorf("active tool = %v, want brush", s.Tools().Active)
	}
	for i, b := range s.Surface().Pix() {
		if b != 0 {
			t.Fatalf("byte %d of a new surface = %d", i, b)
		}
	}
}

func TestNewSessionRejectsBadSize(t *testing.T) {
	_, err := NewSession(0, 100, 1)
	if !errors.Is(err, raster.ErrInvalidSize) {
		t.Errorf("NewSession(0, 100) error = %v, want ErrInvalidSize", err)
	}
}

func TestToolTransitions(t *testing.T) {
	blue := raster.Palette[4]
	ts := DefaultToolState()

	ts = ts.WithTool(ToolEraser)
	if ts.Active != ToolEraser || ts.Color != DefaultColor {
		t.Errorf("after eraser: %+v", ts)
	}
	ts = ts.WithColor(blue)
	if ts.Active != ToolBrush || ts.Color != blue {
		t.Errorf("swatch must switch back to brush: %+v", ts)
	}
	ts = ts.WithTool(ToolFill).WithColor(raster.Palette[0])
	if ts.Active != ToolBrush {
		t.Errorf("swatch while filling left tool %v", ts.Active)
	}
	ts = ts.WithWidth(12).WithWidth(0).WithWidth(-3)
	if ts.Width != 12 {
		t.Errorf("width = %v, want 12", ts.Width)
	}
}

func TestBrushGesture(t *testing.T) {
	s := newTestSession(t)
	s.Handle(down(10, 10))
	if !s.Drawing() {
		t.Fatal("not drawing after pointer down")
	}
	s.Handle(move(50, 10))
	s.Handle(up())
	if s.Drawing() {
		t.Fatal("still drawing after pointer up")
	}

	if got := s.Surface().ReadPixel(30, 10); got != DefaultColor {
		t.Errorf("pixel (30,10) = %v, want default color", got)
	}
	// Moves after the gesture ended paint nothing.
	s.Handle(move(50, 90))
	if got := s.Surface().ReadPixel(50, 60); got != raster.Transparent {
		t.Errorf("move without a gesture painted (50,60): %v", got)
	}
}

func TestLeaveEndsGesture(t *testing.T) {
	s := newTestSession(t)
	s.Handle(down(10, 50))
	s.Handle(move(99, 50))
	s.Handle(PointerEvent{Kind: PointerLeave, Pos: raster.Point{X: 120, Y: 50}})
	s.Handle(move(99, 90))
	if got := s.Surface().ReadPixel(99, 80); got != raster.Transparent {
		t.Errorf("stroke continued after leaving: %v", got)
	}
}

func TestEraserGesture(t *testing.T) {
	s := newTestSession(t)
	s.Handle(down(20, 20))
	s.Handle(move(80, 20))
	s.Handle(up())

	s.SelectTool(ToolEraser)
	s.SetWidth(20)
	s.Handle(down(20, 20))
	s.Handle(move(80, 20))
	s.Handle(up())

	for i, b := range s.Surface().Pix() {
		if i%4 == 3 && b != 0 {
			t.Fatalf("alpha at byte %d = %d after erasing", i, b)
		}
	}
}

func TestFillToolDoesNotStroke(t *testing.T) {
	s := newTestSession(t)
	green := raster.Palette[3]
	s.SelectColor(green)
	s.SelectTool(ToolFill)

	if !s.Handle(down(50, 50)) {
		t.Fatal("fill reported no change")
	}
	if s.Drawing() {
		t.Fatal("fill started a stroke")
	}
	before := s.Surface().Pix()
	s.Handle(move(10, 10))
	s.Handle(up())
	if !bytes.Equal(before, s.Surface().Pix()) {
		t.Error("move with the fill tool changed the surface")
	}
	if got := s.Surface().ReadPixel(0, 0); got != green {
		t.Errorf("pixel (0,0) = %v, want green", got)
	}
	// Filling again with the same color is a no-op.
	if s.Handle(down(50, 50)) {
		t.Error("second fill with the same color reported a change")
	}
}

func TestFillOutsideCanvas(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(ToolFill)
	if s.Handle(down(-5, -5)) {
		t.Error("fill outside the canvas reported a change")
	}
}

func TestClearAllAndReset(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(ToolFill)
	s.Handle(down(1, 1))
	s.ClearAll()
	if s.Tools().Active != ToolFill {
		t.Errorf("ClearAll changed the tool to %v", s.Tools().Active)
	}
	if got := s.Surface().ReadPixel(1, 1); got != raster.Transparent {
		t.Errorf("pixel after ClearAll = %v", got)
	}

	s.SetWidth(17)
	s.Reset()
	if s.Tools() != DefaultToolState() {
		t.Errorf("Reset left tools %+v", s.Tools())
	}
}

func TestCommitKeepsDrawing(t *testing.T) {
	s := newTestSession(t)
	s.Handle(down(40, 40))
	enc, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if enc.Width() != 100 || enc.Height() != 100 {
		t.Errorf("encoded size = %dx%d", enc.Width(), enc.Height())
	}
	if s.Drawing() {
		t.Error("Commit left a stroke open")
	}
	if got := s.Surface().ReadPixel(40, 40); got != DefaultColor {
		t.Errorf("Commit changed the surface: %v", got)
	}
}
