package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"DrawTreeOrnament/internal/state"
)

// Card dimensions in pixels.
const (
	CardWidth  = 530
	CardHeight = 700
)

// DefaultCardTitle is used when the tree has no name.
const DefaultCardTitle = "Our Christmas"

// treeOrigin is where the tree artwork's top-left corner sits on the card.
var treeOrigin = image.Pt(105, 100)

var (
	borderRed  = color.RGBA{R: 0xC0, G: 0x39, B: 0x2B, A: 0xFF}
	nightSky   = color.RGBA{R: 0x0A, G: 0x19, B: 0x2F, A: 0xFF}
	leafLight  = color.RGBA{R: 0x43, G: 0xA0, B: 0x47, A: 0xFF}
	leafDark   = color.RGBA{R: 0x1B, G: 0x5E, B: 0x20, A: 0xFF}
	trunkLight = color.RGBA{R: 0x79, G: 0x55, B: 0x48, A: 0xFF}
	trunkDark  = color.RGBA{R: 0x5D, G: 0x40, B: 0x37, A: 0xFF}
	starGold   = color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
)

// tree layers, bottom first, in tree artwork coordinates.
var treeLayers = [][]point{
	{{50, 320}, {250, 320}, {150, 180}},
	{{75, 230}, {225, 230}, {150, 110}},
	{{100, 140}, {200, 140}, {150, 75}},
}

const leafStroke = 25

type point struct{ x, y float64 }

// RenderCard draws a greeting card of the tree with its ornaments hung in
// their slots. Ornaments that fail to decode are skipped.
func RenderCard(title string, ornaments []state.Ornament) *image.RGBA {
	bg := background()
	dst := image.NewRGBA(bg.Rect)
	copy(dst.Pix, bg.Pix)

	for _, o := range ornaments {
		if o.Slot < 0 || o.Slot >= state.MaxOrnaments {
			continue
		}
		if err := drawOrnament(dst, o); err != nil {
			log.Printf("[CARD] Skipping ornament %s: %v", o.ID, err)
		}
	}

	if title == "" {
		title = DefaultCardTitle
	}
	drawTitle(dst, title)
	return dst
}

// TreePoint maps a point on the card to tree artwork coordinates, the space
// slot anchors are given in.
func TreePoint(p image.Point) image.Point {
	return p.Sub(treeOrigin)
}

// background is everything on the card that does not depend on the tree.
var background = sync.OnceValue(func() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	drawBorder(dst)
	draw.Draw(dst, image.Rect(60, 60, 470, 640), image.NewUniform(nightSky), image.Point{}, draw.Src)
	drawSnow(dst)
	drawGlow(dst)
	drawTree(dst)
	return dst
})

// WriteCardPNG renders the card and encodes it as PNG.
func WriteCardPNG(w io.Writer, title string, ornaments []state.Ornament) error {
	if err := png.Encode(w, RenderCard(title, ornaments)); err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	return nil
}

// drawBorder paints the candy-cane frame: red with white diagonal stripes.
func drawBorder(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(borderRed), image.Point{}, draw.Src)

	const stripeWidth, stripeLength, spacing = 25.0, 800.0, 40.0
	c := math.Sqrt2 / 2
	for y := 0; y < CardHeight; y++ {
		for x := 0; x < CardWidth; x++ {
			for i := -10; i < 30; i++ {
				// Position in the frame of a stripe rotated by 45 degrees.
				dx := float64(x) + 0.5 - float64(i)*spacing
				dy := float64(y) + 0.5 + 150
				lx := (dx + dy) * c
				ly := (dy - dx) * c
				if lx >= 0 && lx < stripeWidth && ly >= 0 && ly < stripeLength {
					dst.SetRGBA(x, y, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
					break
				}
			}
		}
	}
}

func drawSnow(dst *image.RGBA) {
	z := vector.NewRasterizer(CardWidth, CardHeight)
	for i := 0; i < 60; i++ {
		x := 60 + math.Mod(float64(i)*1.67, 100)*4.1
		y := 60 + math.Mod(float64(i)*13.3, 100)*5.8
		size := 2.0
		if i%3 == 0 {
			size = 3
		}
		addPolygon(z, circle(point{x, y}, size/2, 12))
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 153}), image.Point{})
}

func drawGlow(dst *image.RGBA) {
	r := image.Rect(105, 120, 425, 440)
	draw.Draw(dst, r, radialGlow{cx: 265, cy: 280, radius: 160}, r.Min, draw.Over)
}

func drawTree(dst *image.RGBA) {
	off := point{float64(treeOrigin.X), float64(treeOrigin.Y)}

	trunk := roundedPolygon(translate([]point{{125, 285}, {175, 285}, {175, 395}, {125, 395}}, off), 5, 4)
	z := vector.NewRasterizer(CardWidth, CardHeight)
	addPolygon(z, trunk)
	z.Draw(dst, dst.Bounds(), linearGradient{
		from: point{off.x + 120, 0}, to: point{off.x + 180, 0},
		c0: trunkLight, c1: trunkDark,
	}, image.Point{})

	for _, layer := range treeLayers {
		poly := translate(layer, off)
		z.Reset(CardWidth, CardHeight)
		addPolygon(z, roundedPolygon(poly, leafStroke/2, 8))
		min, max := bounds(poly)
		z.Draw(dst, dst.Bounds(), linearGradient{from: min, to: max, c0: leafLight, c1: leafDark}, image.Point{})
	}

	z.Reset(CardWidth, CardHeight)
	addPolygon(z, star(point{off.x + 150, off.y + 55}, 22, 9))
	z.Draw(dst, dst.Bounds(), image.NewUniform(starGold), image.Point{})
}

// drawOrnament scales the ornament into its slot, keeping its aspect ratio.
func drawOrnament(dst *image.RGBA, o state.Ornament) error {
	if err := state.CheckImage(o.Image); err != nil {
		return err
	}
	src, err := png.Decode(bytes.NewReader(o.Image))
	if err != nil {
		return err
	}
	slot := state.SlotRect(o.Slot).Add(treeOrigin)
	sb := src.Bounds()
	if sb.Empty() {
		return fmt.Errorf("empty image")
	}
	w, h := slot.Dx(), slot.Dy()
	if sb.Dx() > sb.Dy() {
		h = h * sb.Dy() / sb.Dx()
	} else if sb.Dy() > sb.Dx() {
		w = w * sb.Dx() / sb.Dy()
	}
	min := slot.Min.Add(image.Pt((slot.Dx()-w)/2, (slot.Dy()-h)/2))
	draw.CatmullRom.Scale(dst, image.Rectangle{Min: min, Max: min.Add(image.Pt(w, h))}, src, sb, draw.Over, nil)
	return nil
}

var loadFaces = sync.OnceValues(func() ([2]font.Face, error) {
	var faces [2]font.Face
	for i, src := range []struct {
		ttf  []byte
		size float64
	}{{gobold.TTF, 28}, {goregular.TTF, 18}} {
		f, err := opentype.Parse(src.ttf)
		if err != nil {
			return faces, err
		}
		faces[i], err = opentype.NewFace(f, &opentype.FaceOptions{Size: src.size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return faces, err
		}
	}
	return faces, nil
})

func drawTitle(dst *image.RGBA, title string) {
	faces, err := loadFaces()
	if err != nil {
		log.Printf("[CARD] Couldn't load fonts: %v", err)
		return
	}
	centerText(dst, faces[0], title, 267, 542, color.NRGBA{A: 204})
	centerText(dst, faces[0], title, 265, 540, color.White)

	draw.Draw(dst, image.Rect(143, 565, 387, 566), image.NewUniform(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 77}), image.Point{}, draw.Over)
	centerText(dst, faces[1], "DrawTreeOrnament", 265, 595, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 153})
}

func centerText(dst *image.RGBA, face font.Face, s string, cx, baseline int, c color.Color) {
	d := font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s)
	d.Dot = fixed.Point26_6{X: fixed.I(cx) - width/2, Y: fixed.I(baseline)}
	d.DrawString(s)
}
