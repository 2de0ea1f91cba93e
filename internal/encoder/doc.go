// Package encoder serializes an atlas descriptor into the requested output
// formats. Every encoder is a pure function of the descriptor and the
// request, so encoders run concurrently and write their artifacts afterwards
// in a fixed order.
package encoder
