package config

import (
	"fmt"
	"path/filepath"
)

// File is the on-disk request schema shared by every request file format.
// Optional scalars are pointers so that an omitted field keeps its default.
type File struct {
	Name              string       `json:"name" toml:"name"`
	OutputPath        string       `json:"output_path" toml:"output_path"`
	Folders           []string     `json:"folders" toml:"folders"`
	AllowNormalOutput *bool        `json:"allow_normal_output" toml:"allow_normal_output"`
	TemplatePath      StringList   `json:"template_path" toml:"template_path"`
	OutputType        StringList   `json:"output_type" toml:"output_type"`
	ImageOptions      ImageOptions `json:"image_options" toml:"image_options"`
	Features          Features     `json:"features" toml:"features"`
}

// ImageOptions configures the sheet image and frame naming.
type ImageOptions struct {
	OutputExtension string `json:"output_extension" toml:"output_extension"`
	MaxSize         *int   `json:"max_size" toml:"max_size"`
	ShowExtension   *bool  `json:"show_extension" toml:"show_extension"`
}

// Features toggles optional discovery behavior.
type Features struct {
	NinePatch bool `json:"nine_patch" toml:"nine_patch"`
	Aseprite  bool `json:"aseprite" toml:"aseprite"`
	AseSheet  bool `json:"ase_sheet" toml:"ase_sheet"`
}

// Request converts the file into a validated build request. Relative output,
// folder and template paths are resolved against baseDir, the directory that
// holds the request file.
func (f *File) Request(baseDir string) (*Request, error) {
	req := NewRequest()
	req.Name = f.Name
	req.OutputDir = resolve(baseDir, f.OutputPath)
	for _, folder := range f.Folders {
		req.Folders = append(req.Folders, resolve(baseDir, folder))
	}
	for _, tmpl := range f.TemplatePath {
		req.Templates = append(req.Templates, resolve(baseDir, tmpl))
	}
	if f.AllowNormalOutput != nil {
		req.AllowNormalOutput = *f.AllowNormalOutput
	}

	if len(f.OutputType) > 0 {
		req.Encodings = req.Encodings[:0]
		for _, name := range f.OutputType {
			e, err := ParseEncoding(name)
			if err != nil {
				return nil, err
			}
			req.Encodings = append(req.Encodings, e)
		}
	}

	if f.ImageOptions.OutputExtension != "" {
		if err := req.ImageFormat.UnmarshalText([]byte(f.ImageOptions.OutputExtension)); err != nil {
			return nil, err
		}
	}
	if f.ImageOptions.MaxSize != nil {
		req.MaxSize = *f.ImageOptions.MaxSize
	}
	if f.ImageOptions.ShowExtension != nil {
		req.ShowExtension = *f.ImageOptions.ShowExtension
	}

	req.NinePatch = f.Features.NinePatch
	req.MultiFrame = f.Features.Aseprite
	if f.Features.AseSheet {
		req.MultiFrameMode = SingleSheet
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func resolve(baseDir, p string) string {
	if p == "" || baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func fileError(path string, err error) error {
	return fmt.Errorf("failed to load request file %s: %w", path, err)
}
