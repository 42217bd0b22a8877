package ui

import (
	"image"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DrawTreeOrnament/internal/config"
	"DrawTreeOrnament/internal/export"
	"DrawTreeOrnament/internal/raster"
	"DrawTreeOrnament/internal/state"
)

type fakeBackend struct {
	mu        sync.Mutex
	tree      state.Tree
	ornaments []state.Ornament
	hung      [][]byte
}

func (b *fakeBackend) Tree() state.Tree { return b.tree }

func (b *fakeBackend) Ornaments() []state.Ornament {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]state.Ornament(nil), b.ornaments...)
}

func (b *fakeBackend) Full() bool { return len(b.Ornaments()) >= state.MaxOrnaments }

func (b *fakeBackend) Hang(pngData []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hung = append(b.hung, pngData)
	return nil
}

func (b *fakeBackend) Reset(password string) error {
	if password != "pw" {
		return state.ErrWrongPassword
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ornaments = nil
	return nil
}

func newTestSession(t *testing.T) *state.Session {
	t.Helper()
	s, err := state.NewSession(40, 40, 1)
	require.NoError(t, err)
	return s
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestOrnamentWidgetDraws(t *testing.T) {
	test.NewTempApp(t)
	w := NewOrnamentWidget(newTestSession(t))
	changes := 0
	w.OnChanged = func() { changes++ }

	w.MouseDown(mouse(5, 5))
	w.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 5)}})
	w.DragEnd()

	surface := w.Session().Surface()
	for _, x := range []int{5, 15, 30} {
		assert.Equal(t, state.DefaultColor, surface.ReadPixel(x, 5), "pixel (%d,5)", x)
	}
	assert.Equal(t, 2, changes)
	assert.False(t, w.Session().Drawing(), "stroke still active after DragEnd")
}

func TestOrnamentWidgetStopsOnMouseOut(t *testing.T) {
	test.NewTempApp(t)
	w := NewOrnamentWidget(newTestSession(t))

	w.MouseDown(mouse(5, 5))
	w.MouseOut()
	w.MouseMoved(mouse(30, 30))

	assert.Equal(t, raster.Transparent, w.Session().Surface().ReadPixel(30, 30))
}

func TestOrnamentWidgetMinSize(t *testing.T) {
	test.NewTempApp(t)
	w := NewOrnamentWidget(newTestSession(t))
	assert.Equal(t, fyne.NewSize(40, 40), w.MinSize())
}

func TestToolbarSwatchSelectsBrush(t *testing.T) {
	test.NewTempApp(t)
	w := NewOrnamentWidget(newTestSession(t))
	tb := newDrawingToolbar(w)

	w.Session().SelectTool(state.ToolEraser)
	test.Tap(tb.swatches[4])

	tools := w.Session().Tools()
	assert.Equal(t, state.ToolBrush, tools.Active)
	assert.Equal(t, raster.Palette[4], tools.Color)
	assert.True(t, tb.swatches[4].selected)
	assert.False(t, tb.swatches[0].selected)

	test.Tap(tb.tools[state.ToolFill])
	assert.Equal(t, state.ToolFill, w.Session().Tools().Active)

	tb.slider.SetValue(12)
	assert.Equal(t, 12.0, w.Session().Tools().Width)
	assert.Equal(t, "12 px", tb.width.Text)
}

func TestTreeViewCardPoint(t *testing.T) {
	test.NewTempApp(t)
	v := NewTreeView()
	v.Resize(fyne.NewSize(export.CardWidth/2+100, export.CardHeight/2))

	p, ok := v.cardPoint(fyne.NewPos(50+10, 20))
	assert.True(t, ok)
	assert.Equal(t, image.Pt(20, 40), p)

	_, ok = v.cardPoint(fyne.NewPos(10, 20))
	assert.False(t, ok, "point in the letterbox mapped onto the card")
}

func TestAppAttachShowsTree(t *testing.T) {
	a := newApp(test.NewTempApp(t), config.Default())
	b := &fakeBackend{
		tree:      state.Tree{Name: "Office"},
		ornaments: []state.Ornament{{ID: "a", Slot: 0}},
	}
	a.Attach(b, "treeornament://10.0.0.2:8888")

	assert.Equal(t, "Office", a.title.Text)
	assert.Equal(t, "1 / 36 ornaments", a.count.Text)
	assert.False(t, a.actions[0].Disabled(), "draw button disabled on a tree with room")

	for i := 1; i < state.MaxOrnaments; i++ {
		b.ornaments = append(b.ornaments, state.Ornament{ID: string(rune('a' + i)), Slot: i})
	}
	a.Refresh()
	assert.True(t, a.actions[0].Disabled(), "draw button enabled on a full tree")
}
