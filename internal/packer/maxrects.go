package packer

import "math"

type rect struct {
	x, y, w, h int
}

func (r rect) intersects(o rect) bool {
	return r.x < o.x+o.w && r.x+r.w > o.x && r.y < o.y+o.h && r.y+r.h > o.y
}

func (r rect) contains(o rect) bool {
	return o.x >= r.x && o.y >= r.y && o.x+o.w <= r.x+r.w && o.y+o.h <= r.y+r.h
}

// maxRects tracks the maximal free rectangles of a single bin.
type maxRects struct {
	free []rect
}

func newMaxRects(w, h int) *maxRects {
	return &maxRects{free: []rect{{0, 0, w, h}}}
}

// insert places a w x h rectangle at the free spot that leaves the smallest
// short-side remainder. Ties fall back to the long side, then the topmost
// and leftmost position.
func (m *maxRects) insert(w, h int) (rect, bool) {
	found := false
	bestShort, bestLong := math.MaxInt, math.MaxInt
	var best rect

	for _, f := range m.free {
		if w > f.w || h > f.h {
			continue
		}
		leftW, leftH := f.w-w, f.h-h
		short, long := min(leftW, leftH), max(leftW, leftH)

		better := !found ||
			short < bestShort ||
			(short == bestShort && long < bestLong) ||
			(short == bestShort && long == bestLong && (f.y < best.y || (f.y == best.y && f.x < best.x)))
		if better {
			found = true
			bestShort, bestLong = short, long
			best = rect{f.x, f.y, w, h}
		}
	}
	if !found {
		return rect{}, false
	}

	m.split(best)
	m.prune()
	return best, true
}

// split carves used out of every free rectangle it overlaps.
func (m *maxRects) split(used rect) {
	next := make([]rect, 0, len(m.free)+4)
	for _, f := range m.free {
		if !used.intersects(f) {
			next = append(next, f)
			continue
		}
		if used.x > f.x {
			next = append(next, rect{f.x, f.y, used.x - f.x, f.h})
		}
		if used.x+used.w < f.x+f.w {
			next = append(next, rect{used.x + used.w, f.y, f.x + f.w - (used.x + used.w), f.h})
		}
		if used.y > f.y {
			next = append(next, rect{f.x, f.y, f.w, used.y - f.y})
		}
		if used.y+used.h < f.y+f.h {
			next = append(next, rect{f.x, used.y + used.h, f.w, f.y + f.h - (used.y + used.h)})
		}
	}
	m.free = next
}

// prune drops free rectangles contained in another one. Of two identical
// rectangles the first is kept.
func (m *maxRects) prune() {
	kept := make([]rect, 0, len(m.free))
	for i, a := range m.free {
		redundant := false
		for j, b := range m.free {
			if i == j || !b.contains(a) {
				continue
			}
			if a != b || j < i {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, a)
		}
	}
	m.free = kept
}
