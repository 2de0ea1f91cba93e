// Package ron reads and writes Rusty Object Notation, the structured text
// format the packer accepts for request files and nine-patch sidecars and can
// emit for descriptors.
//
// Decoding goes through a generic value tree (maps, slices, strings, numbers,
// bools and nil) which is then bound to Go values with encoding/json, so any
// type that decodes from JSON decodes from RON the same way. Encoding is
// reflection based and produces the compact form: no whitespace, map keys
// sorted, nil pointers as None and non-nil pointers as Some(...).
package ron
