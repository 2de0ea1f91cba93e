package packer

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrPackingFailed is returned when the items cannot all be placed inside a
// canvas no larger than the configured maximum.
var ErrPackingFailed = errors.New("failed to pack images")

// Item is a rectangle to be placed.
type Item struct {
	W, H int
}

// Placement is the top-left offset and size assigned to an Item.
type Placement struct {
	X, Y, W, H int
}

// Result holds the chosen canvas size and one Placement per input item, in
// input order.
type Result struct {
	Width      int
	Height     int
	Placements []Placement
}

// Pack places every item inside a canvas whose sides are powers of two and do
// not exceed maxSize. The canvas starts at the smallest size that could hold
// the total area and grows by doubling its smaller side until the items fit.
func Pack(items []Item, maxSize int) (*Result, error) {
	if !IsPowerOfTwo(maxSize) {
		return nil, fmt.Errorf("%w: max size %d is not a power of two", ErrPackingFailed, maxSize)
	}
	if len(items) == 0 {
		return &Result{Width: 1, Height: 1}, nil
	}

	var area uint64
	maxW, maxH := 0, 0
	for i, it := range items {
		if it.W <= 0 || it.H <= 0 {
			return nil, fmt.Errorf("%w: item %d has invalid size %dx%d", ErrPackingFailed, i, it.W, it.H)
		}
		if it.W > maxSize || it.H > maxSize {
			return nil, fmt.Errorf("%w: item %d (%dx%d) exceeds max size %d", ErrPackingFailed, i, it.W, it.H, maxSize)
		}
		area += uint64(it.W) * uint64(it.H)
		maxW = max(maxW, it.W)
		maxH = max(maxH, it.H)
	}
	if area > uint64(maxSize)*uint64(maxSize) {
		return nil, fmt.Errorf("%w: total area %d exceeds %dx%d", ErrPackingFailed, area, maxSize, maxSize)
	}

	side := NextPowerOfTwo(int(math.Ceil(math.Sqrt(float64(area)))))
	w := min(max(NextPowerOfTwo(maxW), side), maxSize)
	h := min(max(NextPowerOfTwo(maxH), side), maxSize)
	order := packingOrder(items)

	for {
		if placements, ok := packInto(w, h, items, order); ok {
			return &Result{Width: w, Height: h, Placements: placements}, nil
		}
		switch {
		case w <= h && w < maxSize:
			w *= 2
		case h < maxSize:
			h *= 2
		case w < maxSize:
			w *= 2
		default:
			return nil, fmt.Errorf("%w: %d items do not fit in %dx%d", ErrPackingFailed, len(items), maxSize, maxSize)
		}
	}
}

// packingOrder returns item indices sorted tallest first, then widest, with
// the input index as the final tie-break.
func packingOrder(items []Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := items[order[a]], items[order[b]]
		if ia.H != ib.H {
			return ia.H > ib.H
		}
		if ia.W != ib.W {
			return ia.W > ib.W
		}
		return order[a] < order[b]
	})
	return order
}

func packInto(w, h int, items []Item, order []int) ([]Placement, bool) {
	bin := newMaxRects(w, h)
	placements := make([]Placement, len(items))
	for _, idx := range order {
		r, ok := bin.insert(items[idx].W, items[idx].H)
		if !ok {
			return nil, false
		}
		placements[idx] = Placement{X: r.x, Y: r.y, W: r.w, H: r.h}
	}
	return placements, true
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
