package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultRegistry() *Registry {
	return NewRegistry(JSONLoader{}, TOMLLoader{}, RONLoader{})
}

func TestRegistry_LoadsEveryFormatIdentically(t *testing.T) {
	sources := map[string]string{
		"request.json": `{
  "name": "ui",
  "output_path": "out",
  "folders": ["sprites"],
  "template_path": "layout.txt",
  "output_type": ["JSON", "bin"],
  "image_options": {"output_extension": "QOI", "max_size": 256, "show_extension": false},
  "features": {"nine_patch": true, "aseprite": true, "ase_sheet": true}
}`,
		"request.toml": `
name = "ui"
output_path = "out"
folders = ["sprites"]
template_path = "layout.txt"
output_type = ["JSON", "bin"]

[image_options]
output_extension = "QOI"
max_size = 256
show_extension = false

[features]
nine_patch = true
aseprite = true
ase_sheet = true
`,
		"request.ron": `// request
(
    name: "ui",
    output_path: "out",
    folders: ["sprites"],
    template_path: Some("layout.txt"),
    output_type: ["JSON", "bin"],
    image_options: (output_extension: "QOI", max_size: Some(256), show_extension: Some(false)),
    features: (nine_patch: true, aseprite: true, ase_sheet: true),
)`,
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, name, src)

			req, err := defaultRegistry().Load(context.Background(), path)
			require.NoError(t, err)

			want := &Request{
				Name:              "ui",
				OutputDir:         filepath.Join(dir, "out"),
				Folders:           []string{filepath.Join(dir, "sprites")},
				MaxSize:           256,
				ShowExtension:     false,
				NinePatch:         true,
				MultiFrame:        true,
				MultiFrameMode:    SingleSheet,
				ImageFormat:       QOI,
				Encodings:         []Encoding{EncodingJSON, EncodingBinary},
				Templates:         []string{filepath.Join(dir, "layout.txt")},
				AllowNormalOutput: true,
			}
			if diff := cmp.Diff(want, req); diff != "" {
				t.Errorf("unexpected request (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistry_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "r.json", `{"name": "a", "output_path": "/abs/out", "folders": ["/abs/in"]}`)

	req, err := defaultRegistry().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "/abs/out", req.OutputDir)
	assert.Equal(t, []string{"/abs/in"}, req.Folders)
	assert.Equal(t, DefaultMaxSize, req.MaxSize)
	assert.True(t, req.ShowExtension)
	assert.True(t, req.AllowNormalOutput)
	assert.Equal(t, PNG, req.ImageFormat)
	assert.Equal(t, []Encoding{EncodingJSON}, req.Encodings)
	assert.Equal(t, SeparateFrames, req.MultiFrameMode)
	assert.Empty(t, req.Templates)
}

func TestRegistry_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		content  string
		sentinel error
	}{
		{name: "unsupported extension", file: "r.yaml", content: "name: a", sentinel: ErrUnsupportedFormat},
		{name: "malformed json", file: "r.json", content: `{"name": `},
		{name: "malformed toml", file: "r.toml", content: `name = `},
		{name: "malformed ron", file: "r.ron", content: `(name: `},
		{name: "unknown output type", file: "r.json", content: `{"name": "a", "output_path": "o", "folders": ["i"], "output_type": "xml"}`},
		{name: "unknown image format", file: "r.json", content: `{"name": "a", "output_path": "o", "folders": ["i"], "image_options": {"output_extension": "tga"}}`},
		{name: "max size not power of two", file: "r.json", content: `{"name": "a", "output_path": "o", "folders": ["i"], "image_options": {"max_size": 1000}}`},
		{name: "missing folders", file: "r.json", content: `{"name": "a", "output_path": "o"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tc.file, tc.content)
			_, err := defaultRegistry().Load(context.Background(), path)
			require.Error(t, err)
			if tc.sentinel != nil {
				assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			}
		})
	}
}

func TestRegistry_MissingFile(t *testing.T) {
	_, err := defaultRegistry().Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRegistry_Extensions(t *testing.T) {
	assert.Equal(t, []string{".json", ".ron", ".toml"}, defaultRegistry().Extensions())
}

func TestRequest_Validate(t *testing.T) {
	req := NewRequest()
	req.Name = "a"
	req.OutputDir = "out"
	req.Folders = []string{"in"}
	req.Encodings = []Encoding{EncodingRON, EncodingJSON, "Ron", "bin"}

	require.NoError(t, req.Validate())
	assert.Equal(t, []Encoding{EncodingRON, EncodingJSON, EncodingBinary}, req.Encodings)
	assert.True(t, req.Wants(EncodingJSON))
	assert.False(t, req.Wants(EncodingTOML))

	bad := &Request{MaxSize: 3}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "power of two")
}

func TestImageFormat_UnmarshalText(t *testing.T) {
	testCases := []struct {
		in      string
		want    ImageFormat
		wantErr bool
	}{
		{in: "png", want: PNG},
		{in: "PNG", want: PNG},
		{in: "qoi", want: QOI},
		{in: "jpeg", want: JPEG},
		{in: "Jpg", want: JPEG},
		{in: "gif", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			var f ImageFormat
			err := f.UnmarshalText([]byte(tc.in))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}
	assert.Equal(t, "jpg", JPEG.Extension())
}

func TestParseEncoding(t *testing.T) {
	e, err := ParseEncoding(" Binary ")
	require.NoError(t, err)
	assert.Equal(t, EncodingBinary, e)

	e, err = ParseEncoding("bin")
	require.NoError(t, err)
	assert.Equal(t, EncodingBinary, e)

	e, err = ParseEncoding("MessagePack")
	require.NoError(t, err)
	assert.Equal(t, EncodingMsgPack, e)

	_, err = ParseEncoding("yaml")
	assert.Error(t, err)
}
