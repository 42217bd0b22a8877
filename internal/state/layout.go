package state

import "image"

// Tree artwork dimensions, and the size ornaments are shown at.
const (
	TreeWidth    = 300
	TreeHeight   = 410
	OrnamentSize = 50
)

// anchors are the centres of the ornament slots on the tree artwork.
var anchors = [MaxOrnaments]image.Point{
	{X: 150, Y: 70},  // top
	{X: 90, Y: 320},  // bottom left
	{X: 210, Y: 320}, // bottom right
	{X: 190, Y: 140}, {X: 110, Y: 140},
	{X: 150, Y: 250},
	{X: 135, Y: 90}, {X: 165, Y: 90},
	{X: 125, Y: 110}, {X: 175, Y: 110}, {X: 150, Y: 110},
	{X: 130, Y: 160}, {X: 170, Y: 160},
	{X: 100, Y: 180}, {X: 200, Y: 180}, {X: 120, Y: 190}, {X: 180, Y: 190},
	{X: 150, Y: 170}, {X: 90, Y: 200}, {X: 210, Y: 200},
	{X: 110, Y: 230}, {X: 190, Y: 230}, {X: 80, Y: 240}, {X: 220, Y: 240},
	{X: 130, Y: 260}, {X: 170, Y: 260}, {X: 100, Y: 270}, {X: 200, Y: 270},
	{X: 120, Y: 290}, {X: 180, Y: 290}, {X: 70, Y: 300}, {X: 230, Y: 300},
	{X: 140, Y: 310}, {X: 160, Y: 310},
	{X: 150, Y: 200}, {X: 150, Y: 290},
}

// fallbackAnchor sits on the trunk, below every slot.
var fallbackAnchor = image.Point{X: 150, Y: 350}

// Anchor returns the centre of slot on the tree artwork.
func Anchor(slot int) image.Point {
	if slot < 0 || slot >= len(anchors) {
		return fallbackAnchor
	}
	return anchors[slot]
}

// SlotRect returns the square an ornament in slot is drawn into.
func SlotRect(slot int) image.Rectangle {
	c := Anchor(slot)
	half := OrnamentSize / 2
	return image.Rect(c.X-half, c.Y-half, c.X+half, c.Y+half)
}

// SlotAt returns the occupied slot whose anchor is nearest to p, if p falls
// inside that slot's square. Later slots are drawn on top, so they win ties.
func SlotAt(p image.Point, occupied []Ornament) (int, bool) {
	best, bestDist := -1, 0
	for _, o := range occupied {
		if !p.In(SlotRect(o.Slot)) {
			continue
		}
		a := Anchor(o.Slot)
		d := (a.X-p.X)*(a.X-p.X) + (a.Y-p.Y)*(a.Y-p.Y)
		if best < 0 || d <= bestDist {
			best, bestDist = o.Slot, d
		}
	}
	return best, best >= 0
}
