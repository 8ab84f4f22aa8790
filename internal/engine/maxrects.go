package engine

import (
	"math"

	"github.com/piwi3910/GangSheet/internal/model"
)

type rect struct {
	x, y, w, h int
}

func (r rect) right() int  { return r.x + r.w }
func (r rect) bottom() int { return r.y + r.h }

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.right() && b.x < a.right() &&
		a.y < b.bottom() && b.y < a.bottom()
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x && outer.y <= inner.y &&
		outer.right() >= inner.right() && outer.bottom() >= inner.bottom()
}

// FreeRect is an exported copy of one free rectangle, for inspection.
type FreeRect struct {
	X, Y, W, H int
}

// MaxRectsPacker tracks the free space of one canvas as a list of maximal
// free rectangles. Each run owns its own packer; it is not safe for
// concurrent use and cannot be reset.
type MaxRectsPacker struct {
	width, height int
	freeRects     []rect
	scratch       []rect
	placed        []rect
}

// NewMaxRectsPacker creates a packer whose free list is one rectangle
// covering the whole canvas.
func NewMaxRectsPacker(width, height int) *MaxRectsPacker {
	p := &MaxRectsPacker{width: width, height: height}
	if width > 0 && height > 0 {
		p.freeRects = []rect{{0, 0, width, height}}
	}
	return p
}

// candidate is one admissible (free rectangle, orientation) pair.
type candidate struct {
	node          rect
	rotated       bool
	shortSideFit  int
	longSideFit   int
	freeRectIndex int
}

// TryPlace finds a position for a w x h request (optionally turned 90°)
// using Best Short Side Fit with Best Long Side Fit as tie-break, reserves
// it and returns the placement. The request must already include any
// padding. Returns false, leaving the packer untouched, when nothing fits.
func (p *MaxRectsPacker) TryPlace(w, h int, allowRotation bool) (model.Placement, bool) {
	best, ok := p.findBest(w, h, allowRotation)
	if !ok {
		return model.Placement{}, false
	}
	p.placeRect(best.node)
	return model.Placement{X: best.node.x, Y: best.node.y, Rotated: best.rotated}, true
}

// Fits reports whether a w x h request could be placed right now, without
// modifying the packer.
func (p *MaxRectsPacker) Fits(w, h int, allowRotation bool) bool {
	_, ok := p.findBest(w, h, allowRotation)
	return ok
}

// findBest scores every free rectangle in both orientations. Ties keep the
// earliest free rectangle and prefer upright over rotated.
func (p *MaxRectsPacker) findBest(w, h int, allowRotation bool) (candidate, bool) {
	if w <= 0 || h <= 0 {
		return candidate{}, false
	}
	best := candidate{
		shortSideFit:  math.MaxInt,
		longSideFit:   math.MaxInt,
		freeRectIndex: -1,
	}

	try := func(i int, fr rect, cw, ch int, rotated bool) {
		if fr.w < cw || fr.h < ch {
			return
		}
		leftoverHoriz := fr.w - cw
		leftoverVert := fr.h - ch
		shortSideFit := min(leftoverHoriz, leftoverVert)
		longSideFit := max(leftoverHoriz, leftoverVert)
		if shortSideFit < best.shortSideFit ||
			(shortSideFit == best.shortSideFit && longSideFit < best.longSideFit) {
			best = candidate{
				node:          rect{x: fr.x, y: fr.y, w: cw, h: ch},
				rotated:       rotated,
				shortSideFit:  shortSideFit,
				longSideFit:   longSideFit,
				freeRectIndex: i,
			}
		}
	}

	for i, fr := range p.freeRects {
		try(i, fr, w, h, false)
		if allowRotation && w != h {
			try(i, fr, h, w, true)
		}
	}
	return best, best.freeRectIndex >= 0
}

// placeRect reserves node: every free rectangle it intersects is replaced by
// the up to four maximal slivers around it, then contained rectangles are
// pruned.
func (p *MaxRectsPacker) placeRect(node rect) {
	next := p.scratch[:0]
	for _, fr := range p.freeRects {
		if !rectsOverlap(fr, node) {
			next = append(next, fr)
			continue
		}
		next = appendSplits(next, fr, node)
	}

	p.scratch = p.freeRects[:0]
	p.freeRects = pruneContained(next)
	p.placed = append(p.placed, node)
}

// appendSplits appends the parts of fr not covered by used. Each sliver spans
// the full extent of fr along the other axis, so slivers may overlap each
// other; their union is exactly fr minus used. Zero-area slivers are skipped.
func appendSplits(dst []rect, fr, used rect) []rect {
	// Left strip (full height of the free rect)
	if used.x > fr.x {
		dst = append(dst, rect{x: fr.x, y: fr.y, w: used.x - fr.x, h: fr.h})
	}
	// Right strip (full height of the free rect)
	if used.right() < fr.right() {
		dst = append(dst, rect{x: used.right(), y: fr.y, w: fr.right() - used.right(), h: fr.h})
	}
	// Top strip (full width of the free rect)
	if used.y > fr.y {
		dst = append(dst, rect{x: fr.x, y: fr.y, w: fr.w, h: used.y - fr.y})
	}
	// Bottom strip (full width of the free rect)
	if used.bottom() < fr.bottom() {
		dst = append(dst, rect{x: fr.x, y: used.bottom(), w: fr.w, h: fr.bottom() - used.bottom()})
	}
	return dst
}

// pruneContained removes any rect that is fully contained within another,
// compacting in place. Of two identical rects the earlier one survives.
// Containment is transitive, so checking against survivors so far plus the
// not yet visited tail is enough.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := 0
	for i := 0; i < len(rects); i++ {
		a := rects[i]
		redundant := false
		for _, b := range rects[:kept] {
			if containsRect(b, a) {
				redundant = true
				break
			}
		}
		if !redundant {
			for _, b := range rects[i+1:] {
				if b != a && containsRect(b, a) {
					redundant = true
					break
				}
			}
		}
		if !redundant {
			rects[kept] = a
			kept++
		}
	}
	return rects[:kept]
}

// FreeRects returns a copy of the current free list.
func (p *MaxRectsPacker) FreeRects() []FreeRect {
	out := make([]FreeRect, len(p.freeRects))
	for i, r := range p.freeRects {
		out[i] = FreeRect{X: r.x, Y: r.y, W: r.w, H: r.h}
	}
	return out
}

// PlacedRects returns a copy of every reserved rectangle in placement order.
func (p *MaxRectsPacker) PlacedRects() []FreeRect {
	out := make([]FreeRect, len(p.placed))
	for i, r := range p.placed {
		out[i] = FreeRect{X: r.x, Y: r.y, W: r.w, H: r.h}
	}
	return out
}

// Size returns the canvas dimensions the packer was created with.
func (p *MaxRectsPacker) Size() (width, height int) {
	return p.width, p.height
}
