package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"DrawTreeOrnament/internal/export"
	"DrawTreeOrnament/internal/state"
)

// TreeView shows the tree card with every ornament hung on it. Tapping an
// ornament reports who drew it.
type TreeView struct {
	widget.BaseWidget
	image     *canvas.Image
	ornaments []state.Ornament

	OnOrnamentTapped func(state.Ornament)
}

var _ fyne.Tappable = (*TreeView)(nil)

func NewTreeView() *TreeView {
	v := &TreeView{}
	v.image = canvas.NewImageFromImage(export.RenderCard("", nil))
	v.image.FillMode = canvas.ImageFillContain
	v.image.SetMinSize(fyne.NewSize(export.CardWidth/2, export.CardHeight/2))
	v.ExtendBaseWidget(v)
	return v
}

func (v *TreeView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// Show renders the card for the given tree. It must run on the UI goroutine.
func (v *TreeView) Show(title string, ornaments []state.Ornament) {
	v.ornaments = ornaments
	v.image.Image = export.RenderCard(title, ornaments)
	v.image.Refresh()
}

func (v *TreeView) Tapped(e *fyne.PointEvent) {
	if v.OnOrnamentTapped == nil {
		return
	}
	p, ok := v.cardPoint(e.Position)
	if !ok {
		return
	}
	slot, ok := state.SlotAt(export.TreePoint(p), v.ornaments)
	if !ok {
		return
	}
	for _, o := range v.ornaments {
		if o.Slot == slot {
			v.OnOrnamentTapped(o)
			return
		}
	}
}

// cardPoint maps a position in the widget to card pixels, undoing the
// contain fit of the image.
func (v *TreeView) cardPoint(pos fyne.Position) (image.Point, bool) {
	size := v.Size()
	scale := min(size.Width/export.CardWidth, size.Height/export.CardHeight)
	if scale <= 0 {
		return image.Point{}, false
	}
	offX := (size.Width - export.CardWidth*scale) / 2
	offY := (size.Height - export.CardHeight*scale) / 2
	p := image.Pt(int((pos.X-offX)/scale), int((pos.Y-offY)/scale))
	return p, p.In(image.Rect(0, 0, export.CardWidth, export.CardHeight))
}

func ornamentInfo(o state.Ornament) string {
	return fmt.Sprintf("Slot %d\nDrawn by %s\n%s", o.Slot+1, o.Author, o.CreatedAt.Format("Jan 2, 15:04"))
}
