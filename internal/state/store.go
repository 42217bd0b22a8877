package state

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrNoTree is returned by Load when the directory holds no tree yet.
var ErrNoTree = errors.New("no tree saved")

const (
	treeFile     = "tree.toml"
	ornamentsDir = "ornaments"
)

// Store keeps one tree on disk: tree.toml holds the metadata and ornament
// index, ornaments/<id>.png holds the images.
type Store struct {
	dir string
}

type storedTree struct {
	Tree      Tree             `toml:"tree"`
	ResetAt   int64            `toml:"reset_at"`
	Ornaments []storedOrnament `toml:"ornament"`
}

type storedOrnament struct {
	ID        string    `toml:"id"`
	Slot      int       `toml:"slot"`
	Author    string    `toml:"author"`
	Lamport   int64     `toml:"lamport"`
	CreatedAt time.Time `toml:"created_at"`
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the snapshot and prunes images of ornaments no longer on the
// tree.
func (s *Store) Save(snap Snapshot) error {
	imgDir := filepath.Join(s.dir, ornamentsDir)
	if err := os.MkdirAll(imgDir, 0o700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	st := storedTree{Tree: snap.Tree, ResetAt: int64(snap.ResetAt)}
	keep := make(map[string]bool, len(snap.Ornaments))
	for _, o := range snap.Ornaments {
		name := o.ID + ".png"
		keep[name] = true
		path := filepath.Join(imgDir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(path, o.Image, 0o600); err != nil {
				return fmt.Errorf("write ornament %s: %w", o.ID, err)
			}
		}
		st.Ornaments = append(st.Ornaments, storedOrnament{
			ID:        o.ID,
			Slot:      o.Slot,
			Author:    o.Author,
			Lamport:   int64(o.Lamport),
			CreatedAt: o.CreatedAt,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("encode %s: %w", treeFile, err)
	}
	tmp := filepath.Join(s.dir, treeFile+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", treeFile, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, treeFile)); err != nil {
		return fmt.Errorf("replace %s: %w", treeFile, err)
	}

	entries, err := os.ReadDir(imgDir)
	if err != nil {
		return fmt.Errorf("list ornaments: %w", err)
	}
	for _, e := range entries {
		if !keep[e.Name()] && strings.HasSuffix(e.Name(), ".png") {
			if err := os.Remove(filepath.Join(imgDir, e.Name())); err != nil {
				log.Printf("[STORE] Couldn't remove stale ornament %s: %v", e.Name(), err)
			}
		}
	}
	log.Printf("[STORE] Saved tree %q with %d ornaments", snap.Tree.Name, len(snap.Ornaments))
	return nil
}

// Load reads the saved snapshot. Ornaments whose image is missing are
// skipped.
func (s *Store) Load() (Snapshot, error) {
	var st storedTree
	_, err := toml.DecodeFile(filepath.Join(s.dir, treeFile), &st)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrNoTree
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", treeFile, err)
	}

	snap := Snapshot{Tree: st.Tree, ResetAt: uint64(st.ResetAt)}
	for _, so := range st.Ornaments {
		img, err := os.ReadFile(filepath.Join(s.dir, ornamentsDir, so.ID+".png"))
		if err != nil {
			log.Printf("[STORE] Skipping ornament %s: %v", so.ID, err)
			continue
		}
		snap.Ornaments = append(snap.Ornaments, Ornament{
			ID:        so.ID,
			Slot:      so.Slot,
			Image:     img,
			Author:    so.Author,
			Lamport:   uint64(so.Lamport),
			CreatedAt: so.CreatedAt,
		})
	}
	return snap, nil
}
