package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"DrawTreeOrnament/internal/config"
	"DrawTreeOrnament/internal/state"
)

const appID = "io.github.drawtreeornament"

// Backend is the tree the window shows: the hosted tree itself, or a
// client's mirror of a remote one.
type Backend interface {
	Tree() state.Tree
	Ornaments() []state.Ornament
	Full() bool
	// Hang adds a committed drawing to the tree.
	Hang(pngData []byte) error
	// Reset removes every ornament if password is right.
	Reset(password string) error
}

// App is the main window.
type App struct {
	fyneApp fyne.App
	win     fyne.Window
	conf    config.Config
	backend Backend

	tree      *TreeView
	title     *widget.Label
	count     *widget.Label
	status    *widget.Label
	shareLink string
	actions   []*widget.Button
}

func NewApp(conf config.Config) *App {
	return newApp(app.NewWithID(appID), conf)
}

func newApp(fa fyne.App, conf config.Config) *App {
	a := &App{
		fyneApp: fa,
		win:     fa.NewWindow("DrawTreeOrnament"),
		conf:    conf,
		tree:    NewTreeView(),
		title:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		count:   widget.NewLabel(""),
		status:  widget.NewLabel("Ready"),
	}
	a.tree.OnOrnamentTapped = func(o state.Ornament) {
		dialog.ShowInformation("Ornament", ornamentInfo(o), a.win)
	}
	a.win.Resize(fyne.NewSize(720, 820))
	a.win.SetContent(a.treeContent())
	a.setEnabled(false)
	return a
}

// Window returns the main window.
func (a *App) Window() fyne.Window {
	return a.win
}

// Run shows the window and blocks until the app quits.
func (a *App) Run() {
	a.win.ShowAndRun()
}

// OnStopped registers f to run when the app quits.
func (a *App) OnStopped(f func()) {
	a.fyneApp.Lifecycle().SetOnStopped(f)
}

// Attach shows backend's tree in the window. shareLink is shown to hosts so
// they can invite others; clients pass "".
func (a *App) Attach(backend Backend, shareLink string) {
	fyne.Do(func() {
		a.backend = backend
		a.shareLink = shareLink
		a.win.SetContent(a.treeContent())
		a.setEnabled(true)
		a.refresh()
	})
}

// Refresh redraws the tree from the backend. Safe to call from any
// goroutine.
func (a *App) Refresh() {
	fyne.Do(a.refresh)
}

// SetStatus shows text in the status bar. Safe to call from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() { a.status.SetText(text) })
}

// ShowError reports err in a dialog. Safe to call from any goroutine.
func (a *App) ShowError(err error) {
	log.Printf("[UI] %v", err)
	fyne.Do(func() { dialog.ShowError(err, a.win) })
}

func (a *App) refresh() {
	if a.backend == nil {
		return
	}
	tree := a.backend.Tree()
	ornaments := a.backend.Ornaments()
	a.title.SetText(tree.Name)
	a.count.SetText(fmt.Sprintf("%d / %d ornaments", len(ornaments), state.MaxOrnaments))
	a.tree.Show(tree.Name, ornaments)
	if a.backend.Full() {
		a.actions[0].Disable()
	} else {
		a.actions[0].Enable()
	}
}

func (a *App) setEnabled(enabled bool) {
	for _, b := range a.actions {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (a *App) treeContent() fyne.CanvasObject {
	a.actions = []*widget.Button{
		widget.NewButtonWithIcon("Draw ornament", theme.ContentAddIcon(), a.showDrawDialog),
		widget.NewButtonWithIcon("PNG", theme.FileImageIcon(), a.exportPNG),
		widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), a.exportPDF),
		widget.NewButtonWithIcon("Reset", theme.DeleteIcon(), a.showResetDialog),
	}
	a.actions[0].Importance = widget.HighImportance

	top := container.NewHBox(a.actions[0], layout.NewSpacer(), a.actions[1], a.actions[2], a.actions[3])
	bottom := []fyne.CanvasObject{a.count}
	if a.shareLink != "" {
		link := widget.NewLabel(a.shareLink)
		copyLink := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
			a.win.Clipboard().SetContent(a.shareLink)
			a.SetStatus("Link copied")
		})
		bottom = append(bottom, layout.NewSpacer(), widget.NewLabel("Share:"), link, copyLink)
	}

	return container.NewBorder(
		container.NewVBox(top, a.title),
		container.NewVBox(container.NewHBox(bottom...), a.status),
		nil, nil,
		a.tree,
	)
}
