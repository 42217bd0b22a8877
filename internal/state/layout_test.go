package state

import (
	"image"
	"testing"
)

func TestAnchorsAreInsideTree(t *testing.T) {
	seen := make(map[image.Point]int)
	bounds := image.Rect(0, 0, TreeWidth, TreeHeight)
	for slot := 0; slot < MaxOrnaments; slot++ {
		a := Anchor(slot)
		if prev, dup := seen[a]; dup {
			t.Errorf("slots %d and %d share anchor %v", prev, slot, a)
		}
		seen[a] = slot
		if !SlotRect(slot).In(bounds) {
			t.Errorf("slot %d rect %v leaves the tree", slot, SlotRect(slot))
		}
	}
	if Anchor(-1) != fallbackAnchor || Anchor(MaxOrnaments) != fallbackAnchor {
		t.Error("out-of-range slots must use the fallback anchor")
	}
}

func TestSlotRectIsCentered(t *testing.T) {
	r := SlotRect(0)
	if r != image.Rect(125, 45, 175, 95) {
		t.Errorf("SlotRect(0) = %v", r)
	}
}

func TestSlotAt(t *testing.T) {
	occupied := []Ornament{{Slot: 0}, {Slot: 6}}
	if slot, ok := SlotAt(image.Pt(150, 70), occupied); !ok || slot != 0 {
		t.Errorf("SlotAt(top) = %d, %v", slot, ok)
	}
	// (136, 88) is inside both squares but nearest to slot 6.
	if slot, ok := SlotAt(image.Pt(136, 88), occupied); !ok || slot != 6 {
		t.Errorf("SlotAt(overlap) = %d, %v", slot, ok)
	}
	if _, ok := SlotAt(image.Pt(5, 5), occupied); ok {
		t.Error("SlotAt hit an empty corner")
	}
	if _, ok := SlotAt(image.Pt(210, 320), occupied); ok {
		t.Error("SlotAt hit an unoccupied slot")
	}
}
