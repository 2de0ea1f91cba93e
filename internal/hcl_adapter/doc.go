// Package hcl_adapter provides the HCL implementation of config.Loader and
// the HCL template engine used for templated descriptor output.
//
// Request files are decoded with gohcl into a schema struct and translated
// into the format-agnostic config.File. Templates are parsed with hclsyntax
// and evaluated against cty values built from the atlas descriptor.
package hcl_adapter
