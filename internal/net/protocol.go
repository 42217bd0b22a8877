package net

import "DrawTreeOrnament/internal/state"

// Path the hub is served on.
const WebSocketPath = "/ws"

type MessageType string

const (
	// MsgHello is the first message a client sends.
	MsgHello MessageType = "hello"
	// MsgSnapshot carries the whole tree, host to client.
	MsgSnapshot MessageType = "snapshot"
	// MsgCommit asks the host to hang an ornament.
	MsgCommit MessageType = "commit"
	// MsgOp carries one tree change, host to clients.
	MsgOp MessageType = "op"
	// MsgResetRequest asks the host to clear the tree.
	MsgResetRequest MessageType = "reset_request"
	// MsgError reports a rejected request back to its sender.
	MsgError MessageType = "error"
)

// Message is the JSON envelope exchanged over the websocket.
type Message struct {
	Type     MessageType     `json:"type"`
	Author   string          `json:"author,omitempty"`
	Image    []byte          `json:"image,omitempty"` // PNG
	Password string          `json:"password,omitempty"`
	Op       *state.Op       `json:"op,omitempty"`
	Snapshot *state.Snapshot `json:"snapshot,omitempty"`
	Error    string          `json:"error,omitempty"`
}
