package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	treenet "DrawTreeOrnament/internal/net"
)

// ShowExplorer lists the trees browse finds on the network. Choosing one
// calls join, which is expected to Attach the joined tree.
func (a *App) ShowExplorer(browse func() ([]treenet.Service, error), join func(treenet.Service)) {
	var services []treenet.Service

	list := widget.NewList(
		func() int { return len(services) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.HomeIcon()), widget.NewLabel("tree"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			s := services[id]
			obj.(*fyne.Container).Objects[1].(*widget.Label).SetText(fmt.Sprintf("%s  (%s)", s.Tree, s.Addr))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		s := services[id]
		a.SetStatus("Joining " + s.Tree + "...")
		go join(s)
	}

	var search *widget.Button
	refresh := func() {
		search.Disable()
		a.status.SetText("Looking for trees nearby...")
		go func() {
			found, err := browse()
			fyne.Do(func() {
				search.Enable()
				services = found
				list.UnselectAll()
				list.Refresh()
				switch {
				case err != nil:
					a.status.SetText(err.Error())
				case len(found) == 0:
					a.status.SetText("No trees found")
				default:
					a.status.SetText(fmt.Sprintf("Found %d trees", len(found)))
				}
			})
		}()
	}
	search = widget.NewButtonWithIcon("Search again", theme.ViewRefreshIcon(), refresh)

	a.win.SetContent(container.NewBorder(
		widget.NewLabelWithStyle("Trees on your network", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(search, a.status),
		nil, nil,
		list,
	))
	refresh()
}
