package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// ReadPNG decodes the PNG at path into an NRGBA image.
func ReadPNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	n := image.NewNRGBA(img.Bounds())
	draw.Copy(n, n.Rect.Min, img, img.Bounds(), draw.Src, nil)
	return n
}

// AssertFramesDisjoint checks that no two frames of d overlap.
func AssertFramesDisjoint(t *testing.T, d *atlas.Descriptor) {
	t.Helper()
	names := d.Names()
	for i, a := range names {
		fa := d.Frames[a]
		for _, b := range names[i+1:] {
			fb := d.Frames[b]
			overlap := fa.X < fb.X+fb.Width && fb.X < fa.X+fa.Width &&
				fa.Y < fb.Y+fb.Height && fb.Y < fa.Y+fa.Height
			require.False(t, overlap, "frames %q and %q overlap", a, b)
		}
	}
}

// AssertFramePixels checks that the frame stored under name on sheet holds
// exactly the pixels of want.
func AssertFramePixels(t *testing.T, sheet *image.NRGBA, d *atlas.Descriptor, name string, want *image.NRGBA) {
	t.Helper()
	f, ok := d.Frame(name)
	require.True(t, ok, "frame %q missing", name)
	require.Equal(t, want.Rect.Dx(), int(f.Width), "frame %q width", name)
	require.Equal(t, want.Rect.Dy(), int(f.Height), "frame %q height", name)

	for y := 0; y < int(f.Height); y++ {
		for x := 0; x < int(f.Width); x++ {
			got := sheet.NRGBAAt(int(f.X)+x, int(f.Y)+y)
			require.Equal(t, want.NRGBAAt(x, y), got, "frame %q pixel (%d,%d)", name, x, y)
		}
	}
}
