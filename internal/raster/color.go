package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGBA is a non-premultiplied 8-bit color, the unit the surface stores.
type RGBA struct {
	R, G, B, A uint8
}

// Transparent is the color of every pixel on a fresh surface.
var Transparent = RGBA{}

// Palette holds the swatch colors offered by the drawing toolbar.
var Palette = []RGBA{
	{R: 0xFF, A: 0xFF},                   // red
	{R: 0xFF, G: 0xA5, A: 0xFF},          // orange
	{R: 0xFF, G: 0xFF, A: 0xFF},          // yellow
	{G: 0x80, A: 0xFF},                   // green
	{B: 0xFF, A: 0xFF},                   // blue
	{R: 0x4B, B: 0x82, A: 0xFF},          // indigo
	{R: 0xEE, G: 0x82, B: 0xEE, A: 0xFF}, // violet
	{A: 0xFF},                            // black
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
	{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF}, // brown
}

// Opaque returns c with full alpha.
func (c RGBA) Opaque() RGBA {
	c.A = 0xFF
	return c
}

// Hex formats the color channels as #RRGGBB. Alpha is dropped.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA converts to the standard library color type.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses "#RRGGBB" (the leading # is optional) into an opaque color.
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGBA{}, fmt.Errorf("raster: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("raster: invalid hex color %q: %w", s, err)
	}
	return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
