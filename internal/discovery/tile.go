package discovery

import "image"

// tile lays frames out in a grid of equally sized cells. The column count
// is half the frame count below four frames and a quarter of it otherwise;
// frame i lands in column i%cols and row i/cols.
func tile(frames []*image.NRGBA) *image.NRGBA {
	n := len(frames)
	cols := n / 4
	if n < 4 {
		cols = n / 2
	}
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols

	var fw, fh int
	for _, f := range frames {
		fw = max(fw, f.Rect.Dx())
		fh = max(fh, f.Rect.Dy())
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, cols*fw, rows*fh))
	for i, f := range frames {
		ox, oy := (i%cols)*fw, (i/cols)*fh
		rowLen := f.Rect.Dx() * 4
		for y := 0; y < f.Rect.Dy(); y++ {
			src := f.PixOffset(f.Rect.Min.X, f.Rect.Min.Y+y)
			dst := sheet.PixOffset(ox, oy+y)
			copy(sheet.Pix[dst:dst+rowLen], f.Pix[src:src+rowLen])
		}
	}
	return sheet
}
