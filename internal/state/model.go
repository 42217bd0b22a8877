package state

import "time"

// MaxOrnaments is how many ornaments one tree holds.
const MaxOrnaments = 36

// Tree is a shared tree that ornaments hang on.
type Tree struct {
	ID           string    `json:"id" toml:"id"`
	Name         string    `json:"name" toml:"name"`
	PasswordHash string    `json:"-" toml:"password_hash"`
	CreatedAt    time.Time `json:"created_at" toml:"created_at"`
}

// Ornament is one committed drawing and the slot it hangs in.
type Ornament struct {
	ID        string    `json:"id"`
	Slot      int       `json:"slot"`
	Image     []byte    `json:"image"` // PNG
	Author    string    `json:"author"`
	Lamport   uint64    `json:"lamport"`
	CreatedAt time.Time `json:"created_at"`
}

type OpType string

const (
	OpAddOrnament OpType = "add_ornament"
	OpResetTree   OpType = "reset_tree"
)

// Op is a change to a tree, as exchanged between peers.
type Op struct {
	Type     OpType    `json:"type"`
	Ornament *Ornament `json:"ornament,omitempty"`
	Lamport  uint64    `json:"lamport"`
	Site     string    `json:"site"`
}

// Snapshot is the full state of a tree.
type Snapshot struct {
	Tree      Tree       `json:"tree"`
	Ornaments []Ornament `json:"ornaments"`
	ResetAt   uint64     `json:"reset_at"`
}
