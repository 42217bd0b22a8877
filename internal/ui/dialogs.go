package ui

import (
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"DrawTreeOrnament/internal/state"
)

// AskForTree asks the host to name a new tree and pick its password.
// create is retried until it succeeds.
func (a *App) AskForTree(create func(name, password string) error) {
	name := widget.NewEntry()
	name.SetPlaceHolder("Our Christmas tree")
	password := widget.NewPasswordEntry()
	password.Validator = func(s string) error {
		if s == "" {
			return state.ErrMissingPassword
		}
		return nil
	}

	pwItem := widget.NewFormItem("Password", password)
	pwItem.HintText = "Needed to reset the tree"
	items := []*widget.FormItem{widget.NewFormItem("Tree name", name), pwItem}
	dialog.ShowForm("Create a tree", "Create", "Quit", items, func(ok bool) {
		if !ok {
			a.fyneApp.Quit()
			return
		}
		if err := create(name.Text, password.Text); err != nil {
			d := dialog.NewError(err, a.win)
			d.SetOnClosed(func() { a.AskForTree(create) })
			d.Show()
		}
	}, a.win)
}

func (a *App) showResetDialog() {
	if a.backend == nil {
		return
	}
	password := widget.NewPasswordEntry()
	items := []*widget.FormItem{widget.NewFormItem("Password", password)}
	dialog.ShowForm("Remove every ornament?", "Reset", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := a.backend.Reset(password.Text); err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		a.SetStatus("Reset requested")
	}, a.win)
}
