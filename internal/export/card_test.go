package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"DrawTreeOrnament/internal/config"
	"DrawTreeOrnament/internal/state"
)

func solidPNG(t *testing.T, c color.NRGBA, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestRenderCardSize(t *testing.T) {
	card := RenderCard("", nil)
	if got := card.Bounds(); got != image.Rect(0, 0, CardWidth, CardHeight) {
		t.Fatalf("bounds = %v", got)
	}
}

func TestRenderCardDrawsTree(t *testing.T) {
	card := RenderCard("Test", nil)
	p := treeOrigin.Add(image.Pt(150, 280))
	c := card.RGBAAt(p.X, p.Y)
	if c.G <= c.R || c.G <= c.B {
		t.Errorf("pixel inside the tree = %v, want green", c)
	}
}

func TestRenderCardHangsOrnaments(t *testing.T) {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	ornaments := []state.Ornament{
		{ID: "a", Slot: 0, Image: solidPNG(t, red, 16, 16)},
		{ID: "b", Slot: 5, Image: []byte("not a png")},
		{ID: "c", Slot: 99, Image: solidPNG(t, red, 16, 16)},
	}
	card := RenderCard("Test", ornaments)

	p := state.Anchor(0).Add(treeOrigin)
	c := card.RGBAAt(p.X, p.Y)
	if c.R < 250 || c.G > 5 || c.B > 5 {
		t.Errorf("slot 0 centre = %v, want red", c)
	}

	p = state.Anchor(5).Add(treeOrigin)
	if c := card.RGBAAt(p.X, p.Y); c.R > c.G {
		t.Errorf("slot 5 centre = %v, want tree colour after a broken ornament", c)
	}
}

func TestRenderCardKeepsAspectRatio(t *testing.T) {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	card := RenderCard("Test", []state.Ornament{{ID: "wide", Slot: 5, Image: solidPNG(t, red, 40, 10)}})

	slot := state.SlotRect(5).Add(treeOrigin)
	top := card.RGBAAt(slot.Min.X+slot.Dx()/2, slot.Min.Y+2)
	if top.R > top.G {
		t.Errorf("top of a wide ornament's slot = %v, want background", top)
	}
	mid := card.RGBAAt(slot.Min.X+2, slot.Min.Y+slot.Dy()/2)
	if mid.R < 250 {
		t.Errorf("middle row of a wide ornament's slot = %v, want red", mid)
	}
}

func TestWriteCardPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCardPNG(&buf, "Test", nil); err != nil {
		t.Fatalf("WriteCardPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != CardWidth || cfg.Height != CardHeight {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRoundedPolygonGrowsOutward(t *testing.T) {
	square := []point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	for _, pts := range [][]point{square, {square[3], square[2], square[1], square[0]}} {
		min, max := bounds(roundedPolygon(pts, 2, 4))
		if min.x > -1.99 || min.y > -1.99 || max.x < 11.99 || max.y < 11.99 {
			t.Errorf("bounds = %v %v, want the square grown by 2", min, max)
		}
	}
}

func TestTreePointFindsSlot(t *testing.T) {
	anchor := state.Anchor(3)
	p := TreePoint(anchor.Add(treeOrigin))
	if p != anchor {
		t.Errorf("TreePoint = %v, want %v", p, anchor)
	}
	slot, ok := state.SlotAt(p, []state.Ornament{{ID: "x", Slot: 3}})
	if !ok || slot != 3 {
		t.Errorf("SlotAt = %d, %v", slot, ok)
	}
}

func TestRenderCardSkipsOversizedOrnament(t *testing.T) {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	huge := solidPNG(t, red, config.MaxOrnamentSide+1, config.MaxOrnamentSide/2)
	card := RenderCard("Test", []state.Ornament{{ID: "huge", Slot: 5, Image: huge}})

	p := state.Anchor(5).Add(treeOrigin)
	if c := card.RGBAAt(p.X, p.Y); c.R > c.G {
		t.Errorf("slot 5 centre = %v, want tree colour", c)
	}
}
