// Package config defines the build request consumed by the atlas pipeline,
// the on-disk request file schema, and the Loader interface used to read
// request files in different formats.
//
// Concrete loaders for JSON, TOML and RON live here; the HCL loader is
// provided by the hcl_adapter package and registered by the application.
package config
