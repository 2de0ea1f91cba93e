// Package discovery walks the request folders, decodes every recognized
// image into an NRGBA buffer and assigns it a stable logical name.
//
// Multi-frame containers (aseprite files and, when enabled, GIFs) expand
// into one asset per frame or into a single tiled sheet. Nine-patch regions
// are read from a .json or .ron sidecar next to the source file.
package discovery
