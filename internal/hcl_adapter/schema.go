package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is the gohcl schema of an .hcl request file.
type fileRoot struct {
	Name              string         `hcl:"name,optional"`
	OutputPath        string         `hcl:"output_path,optional"`
	Folders           []string       `hcl:"folders,optional"`
	AllowNormalOutput *bool          `hcl:"allow_normal_output,optional"`
	TemplatePath      hcl.Expression `hcl:"template_path,optional"`
	OutputType        hcl.Expression `hcl:"output_type,optional"`
	ImageOptions      *imageOptions  `hcl:"image_options,block"`
	Features          *features      `hcl:"features,block"`
}

type imageOptions struct {
	OutputExtension string `hcl:"output_extension,optional"`
	MaxSize         *int   `hcl:"max_size,optional"`
	ShowExtension   *bool  `hcl:"show_extension,optional"`
}

type features struct {
	NinePatch bool `hcl:"nine_patch,optional"`
	Aseprite  bool `hcl:"aseprite,optional"`
	AseSheet  bool `hcl:"ase_sheet,optional"`
}
