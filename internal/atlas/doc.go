// Package atlas defines the descriptor produced by a build: the path of the
// composited sheet and the placement of every named frame inside it.
//
// A Descriptor is assembled once per build and treated as read-only
// afterwards, so every encoder can consume the same value concurrently.
package atlas
