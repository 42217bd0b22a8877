package state

import (
	"fmt"

	"DrawTreeOrnament/internal/raster"
)

// Tool is the active drawing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolFill
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	case ToolFill:
		return "fill"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Defaults every drawing session opens with.
var DefaultColor = raster.RGBA{R: 0xFF, A: 0xFF}

const DefaultWidth = 5.0

// ToolState is what the toolbar controls. Transitions return a new value.
type ToolState struct {
	Active Tool
	Color  raster.RGBA
	Width  float64
}

func DefaultToolState() ToolState {
	return ToolState{Active: ToolBrush, Color: DefaultColor, Width: DefaultWidth}
}

// WithColor records c and switches to the brush: tapping a swatch doubles as
// picking the brush.
func (t ToolState) WithColor(c raster.RGBA) ToolState {
	t.Color = c.Opaque()
	t.Active = ToolBrush
	return t
}

// WithTool switches tools and keeps the stored color.
func (t ToolState) WithTool(tool Tool) ToolState {
	t.Active = tool
	return t
}

// WithWidth sets the stroke width; non-positive widths are ignored.
func (t ToolState) WithWidth(w float64) ToolState {
	if w > 0 {
		t.Width = w
	}
	return t
}

func (t ToolState) pen() raster.Pen {
	p := raster.Pen{Color: t.Color, Width: t.Width}
	if t.Active == ToolEraser {
		p.Mode = raster.ModeEraser
	}
	return p
}

// PointerKind classifies pointer and touch input.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

// PointerEvent is one pointer or touch event in logical canvas pixels.
type PointerEvent struct {
	Kind PointerKind
	Pos  raster.Point
}

// Session is one ornament drawing session: a surface, the tools, and the
// gesture in progress. Events must be delivered in arrival order from a
// single goroutine.
type Session struct {
	width, height int
	surface       *raster.Surface
	stroke        *raster.StrokeRenderer
	tools         ToolState
}

// NewSession opens a session on a blank logical canvas of width x height at
// the given device pixel ratio.
func NewSession(width, height int, ratio float64) (*Session, error) {
	surface, err := raster.NewSurface(width, height, ratio)
	if err != nil {
		return nil, fmt.Errorf("open drawing session: %w", err)
	}
	return &Session{
		width:   width,
		height:  height,
		surface: surface,
		stroke:  raster.NewStrokeRenderer(surface),
		tools:   DefaultToolState(),
	}, nil
}

func (s *Session) Surface() *raster.Surface { return s.surface }
func (s *Session) Tools() ToolState         { return s.tools }

// LogicalSize returns the canvas size in logical pixels.
func (s *Session) LogicalSize() (int, int) { return s.width, s.height }

// Drawing reports whether a stroke gesture is in progress.
func (s *Session) Drawing() bool { return s.stroke.Active() }

func (s *Session) SelectColor(c raster.RGBA) { s.tools = s.tools.WithColor(c) }
func (s *Session) SelectTool(t Tool)         { s.tools = s.tools.WithTool(t) }
func (s *Session) SetWidth(w float64)        { s.tools = s.tools.WithWidth(w) }

// Handle routes a pointer event to the stroke renderer or the flood fill.
// It reports whether the surface may have changed.
func (s *Session) Handle(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		if s.tools.Active == ToolFill {
			s.stroke.End()
			return s.surface.FillAt(ev.Pos, s.tools.Color) > 0
		}
		s.stroke.Begin(ev.Pos, s.tools.pen())
		return true
	case PointerMove:
		if s.tools.Active == ToolFill || !s.stroke.Active() {
			return false
		}
		s.stroke.Extend(ev.Pos)
		return true
	case PointerUp, PointerLeave:
		s.stroke.End()
	}
	return false
}

// ClearAll wipes the surface whatever the current tool.
func (s *Session) ClearAll() {
	s.stroke.End()
	s.surface.Clear()
}

// Commit encodes the drawing. The session keeps its contents so a failed
// save can be retried.
func (s *Session) Commit() (raster.EncodedImage, error) {
	s.stroke.End()
	return s.surface.Commit()
}

// Reset returns the session to its opening state: blank surface, default
// tools.
func (s *Session) Reset() {
	s.ClearAll()
	s.tools = DefaultToolState()
}
