package packer

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlaps(a, b Placement) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// requireValidLayout checks the invariants every successful result must hold.
func requireValidLayout(t *testing.T, items []Item, res *Result, maxSize int) {
	t.Helper()
	require.True(t, IsPowerOfTwo(res.Width), "width %d is not a power of two", res.Width)
	require.True(t, IsPowerOfTwo(res.Height), "height %d is not a power of two", res.Height)
	require.LessOrEqual(t, res.Width, maxSize)
	require.LessOrEqual(t, res.Height, maxSize)
	require.Len(t, res.Placements, len(items))

	for i, p := range res.Placements {
		require.Equal(t, items[i].W, p.W, "item %d width changed", i)
		require.Equal(t, items[i].H, p.H, "item %d height changed", i)
		require.GreaterOrEqual(t, p.X, 0)
		require.GreaterOrEqual(t, p.Y, 0)
		require.LessOrEqual(t, p.X+p.W, res.Width, "item %d leaves the canvas", i)
		require.LessOrEqual(t, p.Y+p.H, res.Height, "item %d leaves the canvas", i)
		for j := i + 1; j < len(res.Placements); j++ {
			require.False(t, overlaps(p, res.Placements[j]), "items %d and %d overlap", i, j)
		}
	}
}

func TestPack_TwoSquaresUseSmallestSquareCanvas(t *testing.T) {
	items := []Item{{W: 32, H: 32}, {W: 32, H: 32}}

	res, err := Pack(items, 1024)
	require.NoError(t, err)

	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 64, res.Height)
	requireValidLayout(t, items, res, 1024)
}

func TestPack_WideItemKeepsCanvasRectangular(t *testing.T) {
	items := []Item{{W: 128, H: 8}}

	res, err := Pack(items, 1024)
	require.NoError(t, err)

	assert.Equal(t, 128, res.Width)
	assert.Equal(t, 32, res.Height)
	assert.Equal(t, Placement{X: 0, Y: 0, W: 128, H: 8}, res.Placements[0])
}

func TestPack_GrowsUntilItemsFit(t *testing.T) {
	// Total area fits 64x64 but two 40x40 squares cannot share it.
	items := []Item{{W: 40, H: 40}, {W: 40, H: 40}}

	res, err := Pack(items, 1024)
	require.NoError(t, err)

	assert.Equal(t, 128, res.Width)
	assert.Equal(t, 64, res.Height)
	requireValidLayout(t, items, res, 1024)
}

func TestPack_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		items   []Item
		maxSize int
	}{
		{name: "item wider than max", items: []Item{{W: 2048, H: 16}}, maxSize: 1024},
		{name: "item taller than max", items: []Item{{W: 16, H: 1025}}, maxSize: 1024},
		{name: "total area too large", items: []Item{{W: 64, H: 64}, {W: 64, H: 64}}, maxSize: 64},
		{name: "geometry does not fit", items: []Item{{W: 40, H: 40}, {W: 40, H: 40}}, maxSize: 64},
		{name: "zero size item", items: []Item{{W: 0, H: 16}}, maxSize: 64},
		{name: "max size not power of two", items: []Item{{W: 1, H: 1}}, maxSize: 1000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Pack(tc.items, tc.maxSize)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrPackingFailed))
		})
	}
}

func TestPack_EmptyInput(t *testing.T) {
	res, err := Pack(nil, 1024)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Width)
	assert.Equal(t, 1, res.Height)
	assert.Empty(t, res.Placements)
}

func TestPack_ExactFillAtMaximum(t *testing.T) {
	items := make([]Item, 16)
	for i := range items {
		items[i] = Item{W: 16, H: 16}
	}

	res, err := Pack(items, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 64, res.Height)
	requireValidLayout(t, items, res, 64)
}

func TestPack_RandomItemsHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 25; round++ {
		items := make([]Item, 1+rng.Intn(60))
		for i := range items {
			items[i] = Item{W: 1 + rng.Intn(48), H: 1 + rng.Intn(48)}
		}
		res, err := Pack(items, 1024)
		require.NoError(t, err, "round %d", round)
		requireValidLayout(t, items, res, 1024)
	}
}

func TestPack_Deterministic(t *testing.T) {
	items := []Item{{W: 10, H: 30}, {W: 30, H: 10}, {W: 17, H: 17}, {W: 5, H: 40}, {W: 10, H: 30}}

	first, err := Pack(items, 256)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Pack(items, 256)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("packing is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestPowerOfTwoHelpers(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(1024))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(-4))
	assert.False(t, IsPowerOfTwo(1000))

	assert.Equal(t, 1, NextPowerOfTwo(0))
	assert.Equal(t, 1, NextPowerOfTwo(1))
	assert.Equal(t, 64, NextPowerOfTwo(46))
	assert.Equal(t, 64, NextPowerOfTwo(64))
	assert.Equal(t, 128, NextPowerOfTwo(65))
}
