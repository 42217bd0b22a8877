package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	treenet "DrawTreeOrnament/internal/net"
	"DrawTreeOrnament/internal/state"
)

// client mirrors a tree hosted elsewhere. Commits and resets are requests;
// the tree only changes when the host's ops come back.
type client struct {
	conn   *treenet.Client
	tree   *state.TreeState
	author string

	onChange func()
	onError  func(error)
}

// joinTree connects to the host at addr and introduces itself as author.
func joinTree(ctx context.Context, addr, author string) (*client, error) {
	conn, err := treenet.Dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	if err := conn.Send(treenet.Message{Type: treenet.MsgHello, Author: author}); err != nil {
		conn.Close()
		return nil, err
	}
	log.Println("Client connected successfully as", conn.LocalAddr())
	return &client{
		conn:   conn,
		tree:   state.NewTreeState(state.Tree{}, state.NewClock()),
		author: author,
	}, nil
}

// run applies the host's messages until the connection closes.
func (c *client) run() error {
	return c.conn.Listen(c.handle)
}

func (c *client) close() error {
	return c.conn.Close()
}

func (c *client) handle(msg treenet.Message) {
	switch msg.Type {
	case treenet.MsgSnapshot:
		if msg.Snapshot == nil {
			return
		}
		c.tree.Restore(*msg.Snapshot)
		log.Printf("[CLIENT] Joined tree %q with %d ornaments", msg.Snapshot.Tree.Name, len(msg.Snapshot.Ornaments))
	case treenet.MsgOp:
		if msg.Op == nil || !c.tree.Apply(*msg.Op) {
			return
		}
	case treenet.MsgError:
		if c.onError != nil {
			c.onError(wireError(msg.Error))
		}
		return
	default:
		log.Printf("[CLIENT] Ignoring '%s' from host", msg.Type)
		return
	}
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *client) Tree() state.Tree            { return c.tree.Tree() }
func (c *client) Ornaments() []state.Ornament { return c.tree.Ornaments() }
func (c *client) Full() bool                  { return c.tree.Full() }

// Hang sends the drawing to the host, which picks its slot.
func (c *client) Hang(pngData []byte) error {
	if c.tree.Full() {
		return state.ErrTreeFull
	}
	if err := state.CheckImage(pngData); err != nil {
		return err
	}
	return c.conn.Send(treenet.Message{Type: treenet.MsgCommit, Author: c.author, Image: pngData})
}

// Reset asks the host to clear the tree. Only the host can check the
// password; a wrong one comes back as an error message.
func (c *client) Reset(password string) error {
	if password == "" {
		return state.ErrWrongPassword
	}
	return c.conn.Send(treenet.Message{Type: treenet.MsgResetRequest, Password: password})
}

var knownErrors = []error{
	state.ErrTreeFull,
	state.ErrWrongPassword,
	state.ErrInvalidImage,
}

// wireError turns an error message from the host back into the matching
// sentinel where there is one.
func wireError(text string) error {
	for _, err := range knownErrors {
		if text == err.Error() {
			return err
		}
		if detail, ok := strings.CutPrefix(text, err.Error()+":"); ok {
			return fmt.Errorf("%w:%s", err, detail)
		}
	}
	return errors.New(text)
}
