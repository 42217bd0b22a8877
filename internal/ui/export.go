package ui

import (
	"fmt"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"DrawTreeOrnament/internal/export"
)

func (a *App) exportPNG() {
	a.saveAs("tree.png", func(w io.Writer) error {
		return export.WriteCardPNG(w, a.backend.Tree().Name, a.backend.Ornaments())
	})
}

func (a *App) exportPDF() {
	a.saveAs("tree.pdf", func(w io.Writer) error {
		return export.WritePDF(w, a.backend.Tree().Name, a.backend.Ornaments())
	})
}

// saveAs asks for a destination and writes the export there.
func (a *App) saveAs(name string, write func(io.Writer) error) {
	if a.backend == nil {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing writer: %v", err)
			}
		}()

		if err := write(writer); err != nil {
			log.Printf("[UI] Export to %s failed: %v", writer.URI(), err)
			dialog.ShowError(fmt.Errorf("export failed: %w", err), a.win)
			return
		}
		a.SetStatus("Saved " + writer.URI().Name())
	}, a.win)
	d.SetFileName(name)
	d.Show()
}
