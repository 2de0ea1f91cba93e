package discovery

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/askeladdk/aseprite"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".qoi":  qoi.Decode,
}

// decodeFrames reads every frame of the file at p. Unless multiFrame is set
// only the first frame of a GIF is read.
func decodeFrames(p string, multiFrame bool) ([]*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(p))
	switch {
	case ext == ".aseprite" || ext == ".ase":
		return readAseprite(p)
	case ext == ".gif" && multiFrame:
		return readGIF(p)
	}

	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unrecognized image type %q", ext)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	return []*image.NRGBA{toNRGBA(img)}, nil
}

// toNRGBA returns img as an NRGBA buffer anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return crop(img, img.Bounds())
}

// crop copies the r region of img into a new origin-anchored NRGBA buffer.
func crop(img image.Image, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, img, r, draw.Src, nil)
	return dst
}

// readGIF renders every GIF frame onto the logical screen, honoring the
// frame disposal methods.
func readGIF(p string) ([]*image.NRGBA, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	if len(g.Image) == 0 {
		return nil, nil
	}

	width, height := g.Config.Width, g.Config.Height
	if width == 0 || height == 0 {
		b := g.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}

	screen := image.NewNRGBA(image.Rect(0, 0, width, height))
	frames := make([]*image.NRGBA, 0, len(g.Image))
	for i, frame := range g.Image {
		var previous *image.NRGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(screen)
		}

		draw.Copy(screen, frame.Bounds().Min, frame, frame.Bounds(), draw.Over, nil)
		frames = append(frames, cloneNRGBA(screen))

		switch disposal {
		case gif.DisposalBackground:
			draw.Copy(screen, frame.Bounds().Min, image.Transparent, frame.Bounds(), draw.Src, nil)
		case gif.DisposalPrevious:
			screen = previous
		}
	}
	return frames, nil
}

// readAseprite returns every frame of an aseprite file with its visible
// layers flattened.
func readAseprite(p string) ([]*image.NRGBA, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spr, err := aseprite.Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	frames := make([]*image.NRGBA, 0, len(spr.Frames))
	for _, fr := range spr.Frames {
		frames = append(frames, crop(spr.Image, fr.Bounds))
	}
	return frames, nil
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
