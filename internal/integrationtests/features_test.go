package integration_tests

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"testing"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/encoder"
	"github.com/Terria-K/cluttered/internal/ron"
	"github.com/Terria-K/cluttered/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var palette = color.Palette{
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 255, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.NRGBA{R: 255, G: 255, A: 255},
	color.NRGBA{G: 255, B: 255, A: 255},
}

// animation returns a GIF whose frame i is filled with palette[i].
func animation(t *testing.T, frames, w, h int) []byte {
	t.Helper()
	anim := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		for j := range frame.Pix {
			frame.Pix[j] = uint8(i)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 5)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))
	return buf.Bytes()
}

func TestFeatures_NinePatchFromRONSidecar(t *testing.T) {
	// --- Arrange ---
	fixtures := testutil.Fixtures{
		Files: map[string]string{
			"request.toml": `
				name = "ui"
				output_path = "out"
				folders = ["art"]
				output_type = ["ron", "binary"]

				[image_options]
				show_extension = false

				[features]
				nine_patch = true`,
			"art/panel.ron": `(x: 4, y: 4, w: 8, h: 8)`,
		},
		Images: map[string]image.Image{
			"art/big.png":   testutil.Solid(40, 40, color.NRGBA{A: 255}),
			"art/panel.png": testutil.Solid(16, 16, color.NRGBA{R: 9, A: 255}),
		},
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, fixtures, "request.toml")

	// --- Assert ---
	require.NoError(t, result.Err)
	want := &atlas.Rect{X: 4, Y: 4, W: 8, H: 8}

	data, err := os.ReadFile(result.Path("out", "ui.ron"))
	require.NoError(t, err)
	var fromRON atlas.Descriptor
	require.NoError(t, ron.Unmarshal(data, &fromRON))
	assert.Equal(t, want, fromRON.Frames["panel"].NinePatch)
	assert.Nil(t, fromRON.Frames["big"].NinePatch)

	data, err = os.ReadFile(result.Path("out", "ui.bin"))
	require.NoError(t, err)
	fromBinary, err := encoder.DecodeBinary(data, true)
	require.NoError(t, err)
	assert.Equal(t, want, fromBinary.Frames["panel"].NinePatch)
	assert.NotZero(t, fromBinary.Frames["panel"].X+fromBinary.Frames["panel"].Y, "panel is placed away from the origin")
}

func TestFeatures_MultiFrameSheet(t *testing.T) {
	// --- Arrange ---
	fixtures := testutil.Fixtures{
		Files: map[string]string{
			"request.hcl": `
				name        = "anim"
				output_path = "out"
				folders     = ["art"]

				features {
				  aseprite  = true
				  ase_sheet = true
				}`,
		},
		Raw: map[string][]byte{"art/walk.gif": animation(t, 5, 8, 8)},
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, fixtures, "request.hcl")

	// --- Assert ---
	require.NoError(t, result.Err)
	d := result.Result.Descriptor
	require.Equal(t, []string{"walk.gif"}, d.Names())
	f := d.Frames["walk.gif"]
	assert.Equal(t, uint32(8), f.Width)
	assert.Equal(t, uint32(40), f.Height)

	sheet := testutil.ReadPNG(t, result.Result.SheetPath)
	for i := 0; i < 5; i++ {
		got := sheet.NRGBAAt(int(f.X)+4, int(f.Y)+i*8+4)
		assert.Equal(t, palette[i], got, "cell %d", i)
	}
}

func TestFeatures_MultiFrameSeparate(t *testing.T) {
	fixtures := testutil.Fixtures{
		Files: map[string]string{
			"request.json": `{
				"name": "anim",
				"output_path": "out",
				"folders": ["art"],
				"image_options": {"show_extension": false},
				"features": {"aseprite": true}
			}`,
		},
		Raw: map[string][]byte{"art/walk.gif": animation(t, 3, 4, 4)},
	}

	result := testutil.RunIntegrationTest(t, fixtures, "request.json")

	require.NoError(t, result.Err)
	d := result.Result.Descriptor
	require.Equal(t, []string{"walk/0", "walk/1", "walk/2"}, d.Names())
	testutil.AssertFramesDisjoint(t, d)
}

func TestFeatures_TemplatesOnly(t *testing.T) {
	// --- Arrange ---
	fixtures := testutil.Fixtures{
		Files: map[string]string{
			"request.hcl": `
				name                = "ui"
				output_path         = "out"
				folders             = ["art"]
				allow_normal_output = false
				output_type         = ["json", "binary"]
				template_path       = ["templates/frames.lua", "templates/count.txt"]`,
			"templates/frames.lua": `
				return {
				%{ for name, f in atlas.frames ~}
				  ["${name}"] = { x = ${f.x}, y = ${f.y}, w = ${f.width}, h = ${f.height} },
				%{ endfor ~}
				}`,
			"templates/count.txt": `${upper(config.name)} has ${length(atlas.names)} frames in ${config.image_format}`,
		},
		Images: map[string]image.Image{
			"art/a.png": testutil.Solid(8, 8, color.NRGBA{A: 255}),
		},
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, fixtures, "request.hcl")

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{result.Path("out", "ui.frames.lua"), result.Path("out", "ui.count.txt")}, result.Result.Artifacts)
	assert.NoFileExists(t, result.Path("out", "ui.json"))
	assert.NoFileExists(t, result.Path("out", "ui.bin"))

	lua, err := os.ReadFile(result.Path("out", "ui.frames.lua"))
	require.NoError(t, err)
	assert.Equal(t, "return {\n  [\"a.png\"] = { x = 0, y = 0, w = 8, h = 8 },\n}", string(lua))

	count, err := os.ReadFile(result.Path("out", "ui.count.txt"))
	require.NoError(t, err)
	assert.Equal(t, "UI has 1 frames in png", string(count))
}

func TestFeatures_MessagePackMatchesBuiltDescriptor(t *testing.T) {
	// --- Arrange ---
	fixtures := testutil.Fixtures{
		Files: map[string]string{
			"request.json": `
				{
				  "name": "icons",
				  "output_path": "out",
				  "folders": ["art"],
				  "output_type": ["MessagePack", "json"]
				}`,
		},
		Images: map[string]image.Image{
			"art/a.png":     testutil.Solid(8, 8, color.NRGBA{R: 200, A: 255}),
			"art/sub/b.png": testutil.Solid(12, 4, color.NRGBA{B: 200, A: 255}),
		},
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, fixtures, "request.json")

	// --- Assert ---
	require.NoError(t, result.Err)
	data, err := os.ReadFile(result.Path("out", "icons.msgpack"))
	require.NoError(t, err)

	got, err := encoder.DecodeMsgPack(data)
	require.NoError(t, err)
	assert.Equal(t, result.Result.Descriptor, got)
	assert.Equal(t, []string{"a.png", "sub/b.png"}, got.Names())
}
