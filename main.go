package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"DrawTreeOrnament/internal/config"
	treenet "DrawTreeOrnament/internal/net"
	"DrawTreeOrnament/internal/state"
	"DrawTreeOrnament/internal/ui"
)

const (
	browseTimeout = 3 * time.Second
	dialTimeout   = 10 * time.Second
)

func main() {
	conf, err := config.Load(config.Dir())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app := ui.NewApp(conf)
	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], treenet.URLScheme):
		addr, err := treenet.ParseShareLink(args[1])
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Println("Starting as CLIENT")
		go runClient(app, conf, addr)
	case len(args) > 1 && args[1] == "explore":
		log.Println("Starting in EXPLORE mode")
		app.ShowExplorer(func() ([]treenet.Service, error) {
			return treenet.Browse(browseTimeout)
		}, func(s treenet.Service) {
			runClient(app, conf, s.Addr)
		})
	default:
		log.Println("Starting as HOST")
		runHost(app, conf)
	}
	app.Run()
}

// runHost opens the saved tree, or asks for a new one on first run.
func runHost(app *ui.App, conf config.Config) {
	store := state.NewStore(conf.TreeDir())
	snap, err := store.Load()
	switch {
	case errors.Is(err, state.ErrNoTree):
		app.AskForTree(func(name, password string) error {
			tree, err := state.NewTree(name, password)
			if err != nil {
				return err
			}
			startHost(app, conf, store, state.Snapshot{Tree: tree})
			return nil
		})
	case err != nil:
		log.Fatalf("Failed to open tree in %s: %v", store.Dir(), err)
	default:
		startHost(app, conf, store, snap)
	}
}

func startHost(app *ui.App, conf config.Config, store *state.Store, snap state.Snapshot) {
	tree := state.NewTreeState(snap.Tree, state.NewClock())
	tree.Restore(snap)
	h := newHost(tree, store, conf.Author())
	h.onChange = app.Refresh
	h.save()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := treenet.Serve(ctx, conf.Port, h.hub); err != nil {
			app.ShowError(err)
		}
	}()

	var stopAdvertising func() error
	if conf.Advertise {
		server, err := treenet.Advertise(conf.Port, snap.Tree.Name)
		if err != nil {
			log.Printf("[MDNS] %v", err)
		} else {
			stopAdvertising = server.Shutdown
		}
	}
	app.OnStopped(func() {
		if stopAdvertising != nil {
			stopAdvertising()
		}
		cancel()
	})

	shareLink := treenet.ShareLink(treenet.OutgoingIP(), conf.Port)
	log.Printf("Share this link: %s", shareLink)
	app.Attach(h, shareLink)
	app.SetStatus(fmt.Sprintf("Hosting on port %d", conf.Port))
}

// runClient joins the tree at addr and mirrors it until the host goes away.
func runClient(app *ui.App, conf config.Config, addr string) {
	app.SetStatus("Connecting to " + addr + "...")
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	c, err := joinTree(ctx, addr, conf.Author())
	cancel()
	if err != nil {
		app.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	c.onChange = app.Refresh
	c.onError = app.ShowError
	app.OnStopped(func() { c.close() })

	app.Attach(c, "")
	app.SetStatus("Connected to " + addr)
	if err := c.run(); err != nil {
		app.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
		return
	}
	app.SetStatus("Host closed the tree")
}
