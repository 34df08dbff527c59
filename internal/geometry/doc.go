// Package geometry provides the pure measurement functions for scrollmux.
//
// All three tracked quantities - visible size, structural offset, and raw
// scroll offset - are computed here and nowhere else, so the coordination
// layers above can be tested against fake surfaces returning deterministic
// numbers.
package geometry
