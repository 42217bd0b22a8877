package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/jung-kurt/gofpdf"

	"DrawTreeOrnament/internal/state"
)

const (
	pageMargin   = 20.0 // mm
	thumbSize    = 25.0
	thumbColumns = 6
)

// ExportPDF writes the card and an ornament index to path as an A4 PDF.
func ExportPDF(path, title string, ornaments []state.Ornament) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePDF(f, title, ornaments); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePDF renders the PDF to w. The first page holds the card, the second
// lists every ornament with its slot and author.
func WritePDF(w io.Writer, title string, ornaments []state.Ornament) error {
	if title == "" {
		title = DefaultCardTitle
	}

	var card bytes.Buffer
	if err := WriteCardPNG(&card, title, ornaments); err != nil {
		return err
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(title, true)
	p.SetCreator("DrawTreeOrnament", true)
	tr := p.UnicodeTranslatorFromDescriptor("")
	pageW, _ := p.GetPageSize()

	p.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("card", opts, &card)
	cardW := pageW - 2*pageMargin
	p.ImageOptions("card", pageMargin, pageMargin, cardW, cardW*CardHeight/CardWidth, false, opts, 0, "")

	if len(ornaments) > 0 {
		p.AddPage()
		p.SetFont("Helvetica", "B", 16)
		p.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
		p.SetFont("Helvetica", "", 9)
		p.CellFormat(0, 6, fmt.Sprintf("%d ornaments", len(ornaments)), "", 1, "L", false, 0, "")

		y0 := p.GetY() + 4
		cellW := (pageW - 2*pageMargin) / thumbColumns
		i := 0
		for _, o := range ornaments {
			img, err := normalizePNG(o.Image)
			if err != nil {
				log.Printf("[PDF] Skipping ornament %s: %v", o.ID, err)
				continue
			}
			name := "ornament-" + o.ID
			p.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))

			x := pageMargin + float64(i%thumbColumns)*cellW
			y := y0 + float64(i/thumbColumns)*(thumbSize+12)
			p.ImageOptions(name, x, y, thumbSize, thumbSize, false, opts, 0, "")
			p.SetXY(x, y+thumbSize+1)
			p.CellFormat(cellW, 4, fmt.Sprintf("Slot %d", o.Slot+1), "", 2, "L", false, 0, "")
			p.CellFormat(cellW, 4, tr(o.Author), "", 0, "L", false, 0, "")
			i++
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// normalizePNG re-encodes an ornament so the PDF writer only ever sees
// plain, non-interlaced PNG data.
func normalizePNG(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
