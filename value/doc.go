// Package value defines the closed sum type of nested data the codec walks,
// and the Shape schema the decoder reconstructs against.
//
// # Shape categories
//
//	Scalar   Unit, Bool, Int, Uint, Float, Char, String
//	Seq      ordered, variable length (optionally unsized)
//	Tuple    ordered, fixed length, heterogeneous
//	Map      unique keys, unordered
//	Struct   named fields in declaration order
//	Enum     tagged union: unit, newtype, tuple or struct variant
//	Option   present or absent
//
// Every consumer switches exhaustively over these types; no other package
// can add a case.
//
// # Documents
//
// FromAny and ToAny bridge untyped document data (the output of JSON, YAML
// or TOML decoders) to values. ShapeOf infers a Shape from an existing value
// so a document can be decoded back after editing.
package value
