package encoder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/hcl_adapter"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoTemplateFile is returned when template output is requested without a
// template path.
var ErrNoTemplateFile = errors.New("template output requested but no template file was given")

// Template renders every configured template file as an HCL template with
// the variables `atlas` and `config`.
//
// A single template writes <out>/<name><ext>; with several templates each
// writes <out>/<name>.<stem><ext>, where stem and ext come from the template
// file name.
type Template struct{}

func (Template) Kind() Kind { return KindTemplate }

func (Template) Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error) {
	if len(req.Templates) == 0 {
		return nil, ErrNoTemplateFile
	}
	vars := map[string]cty.Value{
		"atlas":  hcl_adapter.AtlasValue(d),
		"config": hcl_adapter.RequestValue(req),
	}

	artifacts := make([]Artifact, 0, len(req.Templates))
	for _, tmpl := range req.Templates {
		src, err := os.ReadFile(tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		out, err := hcl_adapter.RenderTemplate(tmpl, src, vars)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{
			Path: templateOutputPath(req, tmpl),
			Data: normalizeSlashes([]byte(out)),
		})
	}
	return artifacts, nil
}

func templateOutputPath(req *config.Request, tmpl string) string {
	ext := filepath.Ext(tmpl)
	if len(req.Templates) == 1 {
		return outputPath(req, ext)
	}
	stem := strings.TrimSuffix(filepath.Base(tmpl), ext)
	return outputPath(req, "."+stem+ext)
}
