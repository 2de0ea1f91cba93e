package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL request loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses and decodes a single .hcl request file. Attribute expressions
// may call the template functions and read the `config_dir` variable.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"config_dir": cty.StringVal(filepath.ToSlash(filepath.Dir(path))),
		},
		Functions: functions(),
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	file, err := l.translateFile(ctx, &root, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("in HCL file %s: %w", path, err)
	}
	logger.Debug("HCL loading complete.", "folders", len(file.Folders), "output_type", []string(file.OutputType))
	return file, nil
}
