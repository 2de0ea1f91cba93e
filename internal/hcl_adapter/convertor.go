package hcl_adapter

import (
	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/zclconf/go-cty/cty"
)

var (
	rectType = cty.Object(map[string]cty.Type{
		"x": cty.Number,
		"y": cty.Number,
		"w": cty.Number,
		"h": cty.Number,
	})
	frameType = cty.Object(map[string]cty.Type{
		"name":       cty.String,
		"x":          cty.Number,
		"y":          cty.Number,
		"width":      cty.Number,
		"height":     cty.Number,
		"nine_patch": rectType,
	})
)

// AtlasValue converts a descriptor into the `atlas` template variable:
// an object with sheet_path, a frames map keyed by name and a names list.
func AtlasValue(d *atlas.Descriptor) cty.Value {
	names := d.Names()
	if len(names) == 0 {
		return cty.ObjectVal(map[string]cty.Value{
			"sheet_path": cty.StringVal(d.SheetPath),
			"frames":     cty.MapValEmpty(frameType),
			"names":      cty.ListValEmpty(cty.String),
		})
	}

	frames := make(map[string]cty.Value, len(names))
	nameVals := make([]cty.Value, 0, len(names))
	for _, name := range names {
		f := d.Frames[name]
		frames[name] = frameValue(name, f)
		nameVals = append(nameVals, cty.StringVal(name))
	}
	return cty.ObjectVal(map[string]cty.Value{
		"sheet_path": cty.StringVal(d.SheetPath),
		"frames":     cty.MapVal(frames),
		"names":      cty.ListVal(nameVals),
	})
}

func frameValue(name string, f atlas.Frame) cty.Value {
	np := cty.NullVal(rectType)
	if f.NinePatch != nil {
		np = cty.ObjectVal(map[string]cty.Value{
			"x": cty.NumberUIntVal(uint64(f.NinePatch.X)),
			"y": cty.NumberUIntVal(uint64(f.NinePatch.Y)),
			"w": cty.NumberUIntVal(uint64(f.NinePatch.W)),
			"h": cty.NumberUIntVal(uint64(f.NinePatch.H)),
		})
	}
	return cty.ObjectVal(map[string]cty.Value{
		"name":       cty.StringVal(name),
		"x":          cty.NumberUIntVal(uint64(f.X)),
		"y":          cty.NumberUIntVal(uint64(f.Y)),
		"width":      cty.NumberUIntVal(uint64(f.Width)),
		"height":     cty.NumberUIntVal(uint64(f.Height)),
		"nine_patch": np,
	})
}

// RequestValue converts the build request into the `config` template variable.
func RequestValue(req *config.Request) cty.Value {
	encodings := make([]string, 0, len(req.Encodings))
	for _, e := range req.Encodings {
		encodings = append(encodings, string(e))
	}
	return cty.ObjectVal(map[string]cty.Value{
		"name":             cty.StringVal(req.Name),
		"output_path":      cty.StringVal(atlas.SlashPath(req.OutputDir)),
		"folders":          stringsValue(req.Folders, true),
		"max_size":         cty.NumberIntVal(int64(req.MaxSize)),
		"show_extension":   cty.BoolVal(req.ShowExtension),
		"nine_patch":       cty.BoolVal(req.NinePatch),
		"multi_frame":      cty.BoolVal(req.MultiFrame),
		"multi_frame_mode": cty.StringVal(req.MultiFrameMode.String()),
		"image_format":     cty.StringVal(req.ImageFormat.Extension()),
		"encodings":        stringsValue(encodings, false),
		"templates":        stringsValue(req.Templates, true),
	})
}

func stringsValue(items []string, paths bool) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(items))
	for _, s := range items {
		if paths {
			s = atlas.SlashPath(s)
		}
		vals = append(vals, cty.StringVal(s))
	}
	return cty.ListVal(vals)
}
