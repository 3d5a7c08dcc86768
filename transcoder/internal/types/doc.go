// Package types defines the compiled type structures for reflection-based
// transcoding.
//
// CompiledType pairs a Go type with the value.Shape it maps to, plus the
// resolved struct field indices and union case fields. By compiling type
// metadata once, the transcoder avoids repeated tag parsing and reflection
// lookups during lift and lower.
//
// This package is internal to the transcoder.
package types
