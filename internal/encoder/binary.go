package encoder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
)

// ErrMalformedBinary is returned by DecodeBinary for truncated or
// inconsistent input.
var ErrMalformedBinary = errors.New("malformed binary descriptor")

// Binary writes the compact little-endian descriptor:
//
//	u8 len | sheet path | u32 count |
//	count x { u8 len | name | u32 x | u32 y | u32 w | u32 h |
//	          [nine-patch] u8 has | [has] u32 x | u32 y | u32 w | u32 h }
//
// Frames are written in ascending name order.
type Binary struct{}

func (Binary) Kind() Kind { return KindBinary }

func (Binary) Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error) {
	data, err := EncodeBinary(d, req.NinePatch)
	if err != nil {
		return nil, err
	}
	return []Artifact{{Path: outputPath(req, ".bin"), Data: data}}, nil
}

// EncodeBinary serializes d. The nine-patch section of every frame is
// present only when ninePatch is set.
func EncodeBinary(d *atlas.Descriptor, ninePatch bool) ([]byte, error) {
	if uint64(d.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("too many frames: %d", d.Len())
	}
	buf, err := appendString(nil, d.SheetPath)
	if err != nil {
		return nil, err
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(d.Len()))

	for _, name := range d.Names() {
		f := d.Frames[name]
		if buf, err = appendString(buf, name); err != nil {
			return nil, err
		}
		buf = appendRect(buf, f.X, f.Y, f.Width, f.Height)
		if !ninePatch {
			continue
		}
		if f.NinePatch == nil {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)
		buf = appendRect(buf, f.NinePatch.X, f.NinePatch.Y, f.NinePatch.W, f.NinePatch.H)
	}
	return buf, nil
}

func appendString(buf []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint8 {
		return nil, fmt.Errorf("string %q is longer than %d bytes", s, math.MaxUint8)
	}
	buf = append(buf, byte(len(s)))
	return append(buf, s...), nil
}

func appendRect(buf []byte, x, y, w, h uint32) []byte {
	for _, v := range [4]uint32{x, y, w, h} {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

// DecodeBinary parses data written by EncodeBinary with the same ninePatch
// setting.
func DecodeBinary(data []byte, ninePatch bool) (*atlas.Descriptor, error) {
	r := &reader{data: data}
	sheet := r.string()
	count := r.u32()
	if r.err != nil {
		return nil, r.err
	}

	d := atlas.New(sheet)
	for i := uint32(0); i < count; i++ {
		name := r.string()
		f := atlas.Frame{X: r.u32(), Y: r.u32(), Width: r.u32(), Height: r.u32()}
		if ninePatch {
			switch r.u8() {
			case 0:
			case 1:
				f.NinePatch = &atlas.Rect{X: r.u32(), Y: r.u32(), W: r.u32(), H: r.u32()}
			default:
				r.fail("invalid nine-patch flag")
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, r.err)
		}
		d.Add(name, f)
	}
	if r.off != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedBinary, len(r.data)-r.off)
	}
	return d, nil
}

type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) fail(msg string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s at offset %d", ErrMalformedBinary, msg, r.off)
	}
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data)-r.off < n {
		r.fail("unexpected end of data")
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() byte {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) string() string {
	n := r.u8()
	return string(r.take(int(n)))
}
