package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"DrawTreeOrnament/internal/config"
	"DrawTreeOrnament/internal/state"
)

// pixelRatio is the configured ratio, or the window's scale when the config
// leaves it at 0, capped so committed ornaments stay within the size the
// tree accepts.
func (a *App) pixelRatio() float64 {
	if a.conf.PixelRatio > 0 {
		return min(a.conf.PixelRatio, config.MaxPixelRatio)
	}
	return min(float64(a.win.Canvas().Scale()), config.MaxPixelRatio)
}

// showDrawDialog opens a blank ornament canvas. Saving hangs the drawing on
// the tree; if that fails the drawing stays open so nothing is lost.
func (a *App) showDrawDialog() {
	if a.backend == nil {
		return
	}
	if a.backend.Full() {
		dialog.ShowError(state.ErrTreeFull, a.win)
		return
	}

	session, err := state.NewSession(a.conf.CanvasWidth, a.conf.CanvasHeight, a.pixelRatio())
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	canvas := NewOrnamentWidget(session)
	toolbar := newDrawingToolbar(canvas)

	var d dialog.Dialog
	save := widget.NewButtonWithIcon("Hang on tree", theme.ConfirmIcon(), func() {
		enc, err := session.Commit()
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if err := a.backend.Hang(enc.Bytes()); err != nil {
			log.Printf("[UI] Couldn't hang ornament: %v", err)
			dialog.ShowError(err, a.win)
			return
		}
		d.Hide()
		a.SetStatus("Ornament sent to the tree")
	})
	save.Importance = widget.HighImportance
	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), func() {
		d.Hide()
	})

	content := container.NewBorder(
		toolbar.object(),
		container.NewHBox(cancel, save),
		nil, nil,
		container.NewCenter(canvas),
	)
	d = dialog.NewCustomWithoutButtons("Draw an ornament", content, a.win)
	d.Resize(fyne.NewSize(float32(a.conf.CanvasWidth)+80, float32(a.conf.CanvasHeight)+260))
	d.Show()
}
