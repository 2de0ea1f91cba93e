package atlas

import (
	"path/filepath"
	"sort"
	"strings"
)

// Rect is a nine-patch stretch region in frame-local coordinates.
type Rect struct {
	X uint32 `json:"x" toml:"x" ron:"x"`
	Y uint32 `json:"y" toml:"y" ron:"y"`
	W uint32 `json:"w" toml:"w" ron:"w"`
	H uint32 `json:"h" toml:"h" ron:"h"`
}

// Fits reports whether r lies entirely inside a width x height frame.
func (r Rect) Fits(width, height int) bool {
	return uint64(r.X)+uint64(r.W) <= uint64(width) && uint64(r.Y)+uint64(r.H) <= uint64(height)
}

// Frame is the placement of one source image on the sheet.
type Frame struct {
	X         uint32 `json:"x" toml:"x" ron:"x"`
	Y         uint32 `json:"y" toml:"y" ron:"y"`
	Width     uint32 `json:"width" toml:"width" ron:"width"`
	Height    uint32 `json:"height" toml:"height" ron:"height"`
	NinePatch *Rect  `json:"nine_patch,omitempty" toml:"nine_patch,omitempty" ron:"nine_patch,omitempty"`
}

// Descriptor maps logical frame names to their placement on the sheet.
type Descriptor struct {
	SheetPath string           `json:"sheet_path" toml:"sheet_path" ron:"sheet_path"`
	Frames    map[string]Frame `json:"frames" toml:"frames" ron:"frames"`
}

// New returns an empty descriptor for the sheet written at sheetPath.
func New(sheetPath string) *Descriptor {
	return &Descriptor{
		SheetPath: SlashPath(sheetPath),
		Frames:    make(map[string]Frame),
	}
}

// Add records a frame under name. A later call with the same name replaces
// the earlier frame.
func (d *Descriptor) Add(name string, f Frame) {
	if f.NinePatch != nil {
		np := *f.NinePatch
		f.NinePatch = &np
	}
	d.Frames[SlashPath(name)] = f
}

// Frame returns the frame stored under name.
func (d *Descriptor) Frame(name string) (Frame, bool) {
	f, ok := d.Frames[name]
	return f, ok
}

// Len returns the number of frames.
func (d *Descriptor) Len() int {
	return len(d.Frames)
}

// Names returns every frame name in ascending order.
func (d *Descriptor) Names() []string {
	names := make([]string, 0, len(d.Frames))
	for name := range d.Frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SlashPath converts host separators and stray backslashes to '/'.
func SlashPath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}
