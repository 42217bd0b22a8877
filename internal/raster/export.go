package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// EncodedImage is the committed form of a surface: PNG bytes with per-pixel
// alpha. It is immutable once produced.
type EncodedImage struct {
	data          []byte
	width, height int
}

// Bytes returns a copy of the PNG data.
func (e EncodedImage) Bytes() []byte {
	return bytes.Clone(e.data)
}

func (e EncodedImage) Width() int  { return e.width }
func (e EncodedImage) Height() int { return e.height }

// Len returns the size of the PNG data in bytes.
func (e EncodedImage) Len() int { return len(e.data) }

// DataURL returns the image as a data:image/png;base64 URL.
func (e EncodedImage) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(e.data)
}

// Commit encodes the current buffer losslessly. The surface is left intact,
// so a failed commit can be retried.
func (s *Surface) Commit() (EncodedImage, error) {
	img := s.Image()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return EncodedImage{}, fmt.Errorf("raster: encode png: %w", err)
	}
	return EncodedImage{
		data:   buf.Bytes(),
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
	}, nil
}

// Decode reads PNG data back into a surface with a pixel ratio of 1.
func Decode(data []byte) (*Surface, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: decode png: %w", err)
	}
	b := src.Bounds()
	s, err := NewSurface(b.Dx(), b.Dy(), 1)
	if err != nil {
		return nil, err
	}
	if n, ok := src.(*image.NRGBA); ok {
		// Copy rows directly; going through draw would round-trip the
		// pixels through premultiplied alpha and lose precision.
		for y := 0; y < b.Dy(); y++ {
			copy(s.img.Pix[y*s.img.Stride:(y+1)*s.img.Stride], n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return s, nil
	}
	draw.Draw(s.img, s.img.Rect, src, b.Min, draw.Src)
	return s, nil
}
