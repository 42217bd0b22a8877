package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"DrawTreeOrnament/internal/raster"
	"DrawTreeOrnament/internal/state"
)

const (
	minPenWidth = 1.0
	maxPenWidth = 20.0
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    raster.RGBA
	OnTapped func(raster.RGBA)

	border   *canvas.Rectangle
	selected bool
}

func newColorSwatch(c raster.RGBA, tapped func(raster.RGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color.NRGBA())
	rect.SetMinSize(fyne.NewSize(28, 28))

	s.border = canvas.NewRectangle(color.Transparent)
	s.applySelection()
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) SetSelected(selected bool) {
	if s.selected == selected {
		return
	}
	s.selected = selected
	if s.border != nil {
		s.applySelection()
		s.border.Refresh()
	}
}

func (s *colorSwatch) applySelection() {
	if s.selected {
		s.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		s.border.StrokeWidth = 3
		return
	}
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// drawingToolbar holds the palette, tool buttons and width slider for one
// ornament canvas.
type drawingToolbar struct {
	canvas   *OrnamentWidget
	swatches []*colorSwatch
	tools    map[state.Tool]*widget.Button
	slider   *widget.Slider
	width    *widget.Label
}

func newDrawingToolbar(c *OrnamentWidget) *drawingToolbar {
	tb := &drawingToolbar{canvas: c, tools: make(map[state.Tool]*widget.Button)}

	for _, col := range raster.Palette {
		tb.swatches = append(tb.swatches, newColorSwatch(col, func(col raster.RGBA) {
			c.Session().SelectColor(col)
			tb.refresh()
		}))
	}

	for _, t := range []struct {
		tool  state.Tool
		label string
		icon  fyne.Resource
	}{
		{state.ToolBrush, "Brush", theme.DocumentCreateIcon()},
		{state.ToolEraser, "Eraser", theme.ContentRemoveIcon()},
		{state.ToolFill, "Fill", theme.ColorPaletteIcon()},
	} {
		tool := t.tool
		tb.tools[tool] = widget.NewButtonWithIcon(t.label, t.icon, func() {
			c.Session().SelectTool(tool)
			tb.refresh()
		})
	}

	tb.width = widget.NewLabel("")
	tb.slider = widget.NewSlider(minPenWidth, maxPenWidth)
	tb.slider.Step = 1
	tb.slider.SetValue(c.Session().Tools().Width)
	tb.slider.OnChanged = func(val float64) {
		c.Session().SetWidth(val)
		tb.refresh()
	}

	tb.refresh()
	return tb
}

// refresh shows the session's current tool state.
func (tb *drawingToolbar) refresh() {
	tools := tb.canvas.Session().Tools()
	for _, s := range tb.swatches {
		s.SetSelected(tools.Active != state.ToolEraser && s.Color == tools.Color)
	}
	for tool, btn := range tb.tools {
		if tool == tools.Active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
	tb.width.SetText(fmt.Sprintf("%.0f px", tools.Width))
}

func (tb *drawingToolbar) object() fyne.CanvasObject {
	palette := container.NewGridWithColumns(len(tb.swatches)/2, swatchObjects(tb.swatches)...)

	clearAll := widget.NewButtonWithIcon("Clear all", theme.ContentClearIcon(), func() {
		tb.canvas.Session().ClearAll()
		tb.canvas.Redraw()
	})
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), tb.slider)

	return container.NewVBox(
		palette,
		container.NewHBox(
			tb.tools[state.ToolBrush],
			tb.tools[state.ToolEraser],
			tb.tools[state.ToolFill],
			layout.NewSpacer(),
			clearAll,
		),
		container.NewHBox(widget.NewLabel("Size:"), sliderContainer, tb.width),
	)
}

func swatchObjects(swatches []*colorSwatch) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(swatches))
	for i, s := range swatches {
		objs[i] = s
	}
	return objs
}
