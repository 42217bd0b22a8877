package main

import (
	"log"
	"sync"

	treenet "DrawTreeOrnament/internal/net"
	"DrawTreeOrnament/internal/state"
)

// host owns the authoritative tree. It assigns slots for local and remote
// commits, saves every change and relays it to the connected clients.
type host struct {
	tree   *state.TreeState
	store  *state.Store
	hub    *treenet.Hub
	author string

	saveMu sync.Mutex

	// onChange is called after the tree changed.
	onChange func()
}

func newHost(tree *state.TreeState, store *state.Store, author string) *host {
	h := &host{
		tree:   tree,
		store:  store,
		hub:    treenet.NewHub(),
		author: author,
	}
	tree.OnLocalOp = h.publish
	h.hub.OnConnect = h.welcome
	h.hub.OnMessage = h.handleMessage
	return h
}

func (h *host) Tree() state.Tree            { return h.tree.Tree() }
func (h *host) Ornaments() []state.Ornament { return h.tree.Ornaments() }
func (h *host) Full() bool                  { return h.tree.Full() }

func (h *host) Reset(password string) error {
	_, err := h.tree.Reset(password)
	return err
}

func (h *host) Hang(pngData []byte) error {
	_, err := h.tree.AddLocal(pngData, h.author)
	return err
}

// publish saves the tree and sends op to every client, including the one
// that asked for the change.
func (h *host) publish(op state.Op) {
	h.save()
	h.hub.Broadcast(treenet.Message{Type: treenet.MsgOp, Op: &op}, nil)
	if h.onChange != nil {
		h.onChange()
	}
}

func (h *host) save() {
	h.saveMu.Lock()
	defer h.saveMu.Unlock()
	if err := h.store.Save(h.tree.Snapshot()); err != nil {
		log.Printf("[HOST] Couldn't save tree: %v", err)
	}
}

// welcome runs before p can see broadcasts, so any op missing from the
// snapshot is delivered after it.
func (h *host) welcome(p *treenet.Peer) {
	snap := h.tree.Snapshot()
	if err := p.Send(treenet.Message{Type: treenet.MsgSnapshot, Snapshot: &snap}); err != nil {
		log.Printf("[HOST] Couldn't send tree to %s: %v", p.RemoteAddr(), err)
	}
}

func (h *host) handleMessage(p *treenet.Peer, msg treenet.Message) {
	log.Printf("[HOST] Received '%s' from %s", msg.Type, p.RemoteAddr())

	var err error
	switch msg.Type {
	case treenet.MsgHello:
		p.Name = msg.Author
	case treenet.MsgCommit:
		author := msg.Author
		if author == "" {
			author = p.Name
		}
		_, err = h.tree.AddLocal(msg.Image, author)
	case treenet.MsgResetRequest:
		_, err = h.tree.Reset(msg.Password)
	default:
		log.Printf("[HOST] Ignoring '%s' from %s", msg.Type, p.RemoteAddr())
	}

	if err != nil {
		if serr := p.Send(treenet.Message{Type: treenet.MsgError, Error: err.Error()}); serr != nil {
			log.Printf("[HOST] Couldn't report error to %s: %v", p.RemoteAddr(), serr)
		}
	}
}
