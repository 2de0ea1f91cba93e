// This file contains the logic for translating the HCL schema structs into the
// format-agnostic request file defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/Terria-K/cluttered/internal/config"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// translateFile converts the decoded HCL schema into a config.File.
func (l *Loader) translateFile(ctx context.Context, root *fileRoot, evalCtx *hcl.EvalContext) (*config.File, error) {
	file := &config.File{
		Name:              root.Name,
		OutputPath:        root.OutputPath,
		Folders:           root.Folders,
		AllowNormalOutput: root.AllowNormalOutput,
	}

	var err error
	if file.TemplatePath, err = stringList(ctx, root.TemplatePath, "template_path", evalCtx); err != nil {
		return nil, err
	}
	if file.OutputType, err = stringList(ctx, root.OutputType, "output_type", evalCtx); err != nil {
		return nil, err
	}

	if opts := root.ImageOptions; opts != nil {
		file.ImageOptions = config.ImageOptions{
			OutputExtension: opts.OutputExtension,
			MaxSize:         opts.MaxSize,
			ShowExtension:   opts.ShowExtension,
		}
	}
	if f := root.Features; f != nil {
		file.Features = config.Features{
			NinePatch: f.NinePatch,
			Aseprite:  f.Aseprite,
			AseSheet:  f.AseSheet,
		}
	}
	return file, nil
}

// stringList evaluates an attribute that may hold a string or a list of
// strings. An omitted or null attribute yields nil.
func stringList(ctx context.Context, expr hcl.Expression, attrName string, evalCtx *hcl.EvalContext) (config.StringList, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute %q: %w", attrName, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("attribute %q: value is not known", attrName)
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return config.StringList{val.AsString()}, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make(config.StringList, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() || elem.Type() != cty.String {
				return nil, fmt.Errorf("attribute %q: expected a list of strings, found %s element", attrName, elem.Type().FriendlyName())
			}
			out = append(out, elem.AsString())
		}
		return out, nil
	}
	return nil, fmt.Errorf("attribute %q: expected a string or a list of strings, found %s", attrName, ty.FriendlyName())
}
