// Package compositor draws packed images onto a transparent sheet and writes
// the sheet in the requested image format.
package compositor
