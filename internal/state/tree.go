package state

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"DrawTreeOrnament/internal/config"
)

var (
	ErrTreeFull        = errors.New("the tree already holds the maximum number of ornaments")
	ErrWrongPassword   = errors.New("wrong tree password")
	ErrMissingName     = errors.New("tree name is required")
	ErrMissingPassword = errors.New("tree password is required")
	ErrInvalidImage    = errors.New("ornament image is not a valid PNG")
)

// NewTree creates tree metadata. The password guards resetting the tree and
// is stored only as a bcrypt hash.
func NewTree(name, password string) (Tree, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tree{}, ErrMissingName
	}
	if strings.TrimSpace(password) == "" {
		return Tree{}, ErrMissingPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Tree{}, fmt.Errorf("hash tree password: %w", err)
	}
	return Tree{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}, nil
}

// TreeState is the set of ornaments on one tree. The host assigns slots;
// every peer converges by applying the same ops.
type TreeState struct {
	mu        sync.RWMutex
	tree      Tree
	clock     *Clock
	ornaments map[string]Ornament
	slots     [MaxOrnaments]string // ornament ID per slot, "" when free
	resetAt   uint64

	// OnLocalOp is called after a local change, outside the lock.
	OnLocalOp func(Op)
}

func NewTreeState(tree Tree, clock *Clock) *TreeState {
	return &TreeState{
		tree:      tree,
		clock:     clock,
		ornaments: make(map[string]Ornament),
	}
}

// Tree returns the tree metadata.
func (ts *TreeState) Tree() Tree {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.tree
}

// CheckPassword compares password with the tree's hash.
func (ts *TreeState) CheckPassword(password string) error {
	ts.mu.RLock()
	hash := ts.tree.PasswordHash
	ts.mu.RUnlock()
	if hash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// CheckImage reports whether data is a PNG a drawing session could have
// committed. Only the header is decoded.
func CheckImage(data []byte) error {
	if len(data) > config.MaxOrnamentBytes {
		return fmt.Errorf("%w: %d bytes, at most %d allowed", ErrInvalidImage, len(data), config.MaxOrnamentBytes)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width > config.MaxOrnamentSide || cfg.Height > config.MaxOrnamentSide {
		return fmt.Errorf("%w: %dx%d is larger than %dx%d", ErrInvalidImage,
			cfg.Width, cfg.Height, config.MaxOrnamentSide, config.MaxOrnamentSide)
	}
	return nil
}

// AddLocal hangs a committed PNG in the lowest free slot.
func (ts *TreeState) AddLocal(pngData []byte, author string) (Ornament, error) {
	if err := CheckImage(pngData); err != nil {
		return Ornament{}, err
	}

	ts.mu.Lock()
	slot := ts.freeSlot()
	if slot < 0 {
		ts.mu.Unlock()
		return Ornament{}, ErrTreeFull
	}
	if author == "" {
		author = ts.clock.Site()
	}
	o := Ornament{
		ID:        uuid.NewString(),
		Slot:      slot,
		Image:     bytes.Clone(pngData),
		Author:    author,
		Lamport:   ts.clock.Tick(),
		CreatedAt: time.Now(),
	}
	ts.insert(o)
	ts.mu.Unlock()

	log.Printf("[TREE] Ornament %s hung in slot %d", o.ID, o.Slot)
	ts.emit(Op{Type: OpAddOrnament, Ornament: &o, Lamport: o.Lamport, Site: ts.clock.Site()})
	return o, nil
}

// Reset removes every ornament when password matches.
func (ts *TreeState) Reset(password string) (Op, error) {
	if err := ts.CheckPassword(password); err != nil {
		return Op{}, err
	}
	op := Op{Type: OpResetTree, Lamport: ts.clock.Tick(), Site: ts.clock.Site()}

	ts.mu.Lock()
	removed := ts.reset(op.Lamport)
	ts.mu.Unlock()

	log.Printf("[TREE] Tree reset, %d ornaments removed", removed)
	ts.emit(op)
	return op, nil
}

// Apply merges an op from another peer. It reports whether the state
// changed; duplicates and stale ops are ignored.
func (ts *TreeState) Apply(op Op) bool {
	ts.clock.Observe(op.Lamport)

	ts.mu.Lock()
	defer ts.mu.Unlock()

	switch op.Type {
	case OpAddOrnament:
		o := op.Ornament
		if o == nil || o.Slot < 0 || o.Slot >= MaxOrnaments {
			log.Printf("[TREE] Ignoring malformed ornament op from %s", op.Site)
			return false
		}
		if err := CheckImage(o.Image); err != nil {
			log.Printf("[TREE] Ignoring ornament %s from %s: %v", o.ID, op.Site, err)
			return false
		}
		if _, exists := ts.ornaments[o.ID]; exists {
			return false
		}
		if o.Lamport <= ts.resetAt {
			return false
		}
		if holder := ts.slots[o.Slot]; holder != "" {
			// Two ornaments claimed the same slot; the older one keeps it.
			cur := ts.ornaments[holder]
			if !older(*o, cur) {
				log.Printf("[TREE] Slot %d already taken by %s, dropping %s", o.Slot, cur.ID, o.ID)
				return false
			}
			delete(ts.ornaments, cur.ID)
		}
		ts.insert(*o)
		return true
	case OpResetTree:
		if op.Lamport <= ts.resetAt {
			return false
		}
		ts.reset(op.Lamport)
		return true
	}
	log.Printf("[TREE] Unknown op type %q", op.Type)
	return false
}

// Restore replaces the whole state, e.g. from disk or a host snapshot.
func (ts *TreeState) Restore(s Snapshot) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.tree = s.Tree
	ts.resetAt = s.ResetAt
	ts.ornaments = make(map[string]Ornament, len(s.Ornaments))
	ts.slots = [MaxOrnaments]string{}
	for _, o := range s.Ornaments {
		if o.Slot < 0 || o.Slot >= MaxOrnaments || ts.slots[o.Slot] != "" {
			continue
		}
		if err := CheckImage(o.Image); err != nil {
			log.Printf("[TREE] Dropping ornament %s: %v", o.ID, err)
			continue
		}
		ts.clock.Observe(o.Lamport)
		ts.insert(o)
	}
	ts.clock.Observe(s.ResetAt)
}

// Snapshot returns a copy of the full state.
func (ts *TreeState) Snapshot() Snapshot {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return Snapshot{Tree: ts.tree, Ornaments: ts.sorted(), ResetAt: ts.resetAt}
}

// Ornaments returns the ornaments ordered by slot.
func (ts *TreeState) Ornaments() []Ornament {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.sorted()
}

func (ts *TreeState) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.ornaments)
}

func (ts *TreeState) Full() bool {
	return ts.Len() >= MaxOrnaments
}

func (ts *TreeState) emit(op Op) {
	if ts.OnLocalOp != nil {
		ts.OnLocalOp(op)
	}
}

// The helpers below assume the caller holds ts.mu.

func (ts *TreeState) freeSlot() int {
	for i, id := range ts.slots {
		if id == "" {
			return i
		}
	}
	return -1
}

func (ts *TreeState) insert(o Ornament) {
	ts.ornaments[o.ID] = o
	ts.slots[o.Slot] = o.ID
}

func (ts *TreeState) reset(lamport uint64) int {
	ts.resetAt = lamport
	removed := 0
	for id, o := range ts.ornaments {
		if o.Lamport <= lamport {
			delete(ts.ornaments, id)
			ts.slots[o.Slot] = ""
			removed++
		}
	}
	return removed
}

func (ts *TreeState) sorted() []Ornament {
	out := make([]Ornament, 0, len(ts.ornaments))
	for _, o := range ts.ornaments {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

func older(a, b Ornament) bool {
	if a.Lamport != b.Lamport {
		return a.Lamport < b.Lamport
	}
	return a.ID < b.ID
}
