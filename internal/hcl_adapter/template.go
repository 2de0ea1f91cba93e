package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// RenderTemplate evaluates src as an HCL template with the given variables
// and the shared function table. filename is used in diagnostics only.
func RenderTemplate(filename string, src []byte, vars map[string]cty.Value) (string, error) {
	expr, diags := hclsyntax.ParseTemplate(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to parse template %s: %w", filename, diags)
	}

	val, diags := expr.Value(&hcl.EvalContext{
		Variables: vars,
		Functions: functions(),
	})
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to render template %s: %w", filename, diags)
	}

	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("template %s did not produce a string: %w", filename, err)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("template %s produced no value", filename)
	}
	return val.AsString(), nil
}
