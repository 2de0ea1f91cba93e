package compositor

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/Terria-K/cluttered/internal/config"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/draw"
)

// ErrOutOfBounds is returned when a blit does not fit on the canvas.
var ErrOutOfBounds = errors.New("image placed outside the canvas")

// Blit places Image with its top-left corner at (X, Y).
type Blit struct {
	Image image.Image
	X, Y  int
}

// Composite returns a width x height transparent canvas with every blit
// copied onto it. Source pixels replace canvas pixels, alpha included.
func Composite(width, height int, blits []Blit) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, b := range blits {
		if b.Image == nil {
			return nil, fmt.Errorf("blit %d has no image", i)
		}
		size := b.Image.Bounds().Size()
		dst := image.Rect(b.X, b.Y, b.X+size.X, b.Y+size.Y)
		if !dst.In(canvas.Rect) {
			return nil, fmt.Errorf("%w: blit %d at %v", ErrOutOfBounds, i, dst)
		}
		copyInto(canvas, dst, b.Image)
	}
	return canvas, nil
}

// copyInto writes src to dst on canvas. NRGBA sources are copied row by row
// so straight-alpha values survive unchanged; other models are converted to
// NRGBA by a Src copy.
func copyInto(canvas *image.NRGBA, dst image.Rectangle, src image.Image) {
	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		draw.Copy(canvas, dst.Min, src, src.Bounds(), draw.Src, nil)
		return
	}
	rowLen := dst.Dx() * 4
	for y := 0; y < dst.Dy(); y++ {
		srcOff := nrgba.PixOffset(nrgba.Rect.Min.X, nrgba.Rect.Min.Y+y)
		dstOff := canvas.PixOffset(dst.Min.X, dst.Min.Y+y)
		copy(canvas.Pix[dstOff:dstOff+rowLen], nrgba.Pix[srcOff:srcOff+rowLen])
	}
}

// Encode writes img to w in the given format. JPEG uses maximum quality.
func Encode(w io.Writer, format config.ImageFormat, img image.Image) error {
	switch format {
	case config.PNG:
		return png.Encode(w, img)
	case config.QOI:
		return qoi.Encode(w, img)
	case config.JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	}
	return fmt.Errorf("unsupported image format %d", format)
}

// Save writes img to <dir>/<name>.<ext>, creating dir when missing, and
// returns the written path.
func Save(dir, name string, format config.ImageFormat, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name+"."+format.Extension())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, format, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode sheet %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write sheet %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write sheet %s: %w", path, err)
	}
	return path, nil
}
