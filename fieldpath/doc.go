// Package fieldpath defines the textual addressing scheme shared by the
// encoder and decoder.
//
// A leaf path is a dot-joined list of field names with sequence indices
// appended in brackets to the segment they index into, terminated by a
// one-letter type suffix:
//
//	amount.n            number field
//	vector[2].n         third element of a sequence
//	nested.tuple[1].n   tuple element inside a struct
//	tags[0].key.s       key half of the first map entry
//	[0].b               first element of a root-level sequence of bools
//	n                   a root-level number
//
// Suffixes: b (bool), n (any number), s (string or char). Field names that
// contain separators, quotes, whitespace or are empty are written as Go
// double-quoted strings. Render and Parse are exact inverses for every path
// the encoder produces.
package fieldpath
