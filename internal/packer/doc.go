// Package packer places rectangles inside the smallest power-of-two canvas
// that holds all of them.
//
// Placement uses the MaxRects algorithm with the best-short-side-fit rule.
// Rectangles are never rotated. For a given input order and maximum size the
// result is fully deterministic.
package packer
