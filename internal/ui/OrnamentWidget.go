package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"DrawTreeOrnament/internal/raster"
	"DrawTreeOrnament/internal/state"
)

// OrnamentWidget is the canvas an ornament is drawn on. It turns mouse and
// touch input into pointer events for a drawing session and shows the
// session's surface.
type OrnamentWidget struct {
	widget.BaseWidget
	session *state.Session
	raster  *canvas.Raster

	// OnChanged is called after an event changed the surface.
	OnChanged func()
}

var _ fyne.Widget = (*OrnamentWidget)(nil)
var _ fyne.Draggable = (*OrnamentWidget)(nil)
var _ desktop.Mouseable = (*OrnamentWidget)(nil)
var _ desktop.Hoverable = (*OrnamentWidget)(nil)
var _ mobile.Touchable = (*OrnamentWidget)(nil)

func NewOrnamentWidget(s *state.Session) *OrnamentWidget {
	w := &OrnamentWidget{session: s}
	w.raster = canvas.NewRaster(func(int, int) image.Image {
		return w.session.Surface().Image()
	})
	w.raster.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)
	return w
}

// Session returns the drawing session behind the widget.
func (w *OrnamentWidget) Session() *state.Session {
	return w.session
}

func (w *OrnamentWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	return widget.NewSimpleRenderer(container.NewStack(bg, w.raster, border))
}

func (w *OrnamentWidget) MinSize() fyne.Size {
	lw, lh := w.session.LogicalSize()
	return fyne.NewSize(float32(lw), float32(lh))
}

// Redraw repaints the canvas from the surface.
func (w *OrnamentWidget) Redraw() {
	w.raster.Refresh()
}

func (w *OrnamentWidget) handle(kind state.PointerKind, pos fyne.Position) {
	ev := state.PointerEvent{Kind: kind, Pos: raster.Point{X: float64(pos.X), Y: float64(pos.Y)}}
	if w.session.Handle(ev) {
		w.Redraw()
		if w.OnChanged != nil {
			w.OnChanged()
		}
	}
}

func (w *OrnamentWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.handle(state.PointerDown, e.Position)
	}
}

func (w *OrnamentWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.handle(state.PointerUp, e.Position)
	}
}

func (w *OrnamentWidget) Dragged(e *fyne.DragEvent) {
	w.handle(state.PointerMove, e.Position)
}

func (w *OrnamentWidget) DragEnd() {
	w.handle(state.PointerUp, fyne.Position{})
}

func (w *OrnamentWidget) MouseIn(*desktop.MouseEvent) {}

func (w *OrnamentWidget) MouseMoved(e *desktop.MouseEvent) {
	w.handle(state.PointerMove, e.Position)
}

// MouseOut ends the stroke so it does not resume when the pointer comes back.
func (w *OrnamentWidget) MouseOut() {
	w.handle(state.PointerLeave, fyne.Position{})
}

func (w *OrnamentWidget) TouchDown(e *mobile.TouchEvent) {
	w.handle(state.PointerDown, e.Position)
}

func (w *OrnamentWidget) TouchUp(e *mobile.TouchEvent) {
	w.handle(state.PointerUp, e.Position)
}

func (w *OrnamentWidget) TouchCancel(e *mobile.TouchEvent) {
	w.handle(state.PointerLeave, e.Position)
}
