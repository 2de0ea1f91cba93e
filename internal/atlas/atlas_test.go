package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_AddOverwritesOnCollision(t *testing.T) {
	d := New(`out\sheet.png`)
	d.Add("hero", Frame{X: 0, Y: 0, Width: 16, Height: 16})
	d.Add("hero", Frame{X: 16, Y: 0, Width: 16, Height: 16})

	require.Equal(t, 1, d.Len())
	f, ok := d.Frame("hero")
	require.True(t, ok)
	assert.Equal(t, uint32(16), f.X)
	assert.Equal(t, "out/sheet.png", d.SheetPath)
}

func TestDescriptor_AddCopiesNinePatch(t *testing.T) {
	d := New("sheet.png")
	np := &Rect{X: 4, Y: 4, W: 8, H: 8}
	d.Add("panel", Frame{Width: 16, Height: 16, NinePatch: np})
	np.X = 99

	f, _ := d.Frame("panel")
	require.NotNil(t, f.NinePatch)
	assert.Equal(t, uint32(4), f.NinePatch.X)
}

func TestDescriptor_NamesSorted(t *testing.T) {
	d := New("sheet.png")
	for _, n := range []string{"b", "a/1", "c", "a/0"} {
		d.Add(n, Frame{Width: 1, Height: 1})
	}
	assert.Equal(t, []string{"a/0", "a/1", "b", "c"}, d.Names())
}

func TestRect_Fits(t *testing.T) {
	testCases := []struct {
		name   string
		rect   Rect
		w, h   int
		expect bool
	}{
		{name: "inside", rect: Rect{X: 4, Y: 4, W: 8, H: 8}, w: 16, h: 16, expect: true},
		{name: "touches edge", rect: Rect{X: 8, Y: 8, W: 8, H: 8}, w: 16, h: 16, expect: true},
		{name: "overflows x", rect: Rect{X: 9, Y: 0, W: 8, H: 8}, w: 16, h: 16, expect: false},
		{name: "overflows y", rect: Rect{X: 0, Y: 0, W: 1, H: 17}, w: 16, h: 16, expect: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.rect.Fits(tc.w, tc.h))
		})
	}
}
