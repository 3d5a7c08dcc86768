// Package pathcodec flattens nested values into path-addressed form entries
// and rebuilds values from them.
//
// # Encoding
//
// Encoder walks a value depth-first and emits an ordered stream of Items:
// group and list boundaries, labels, inputs and option remove markers. Each
// input names its leaf with a fieldpath string:
//
//	Example{Amount: 19, Vector: []uint64{1, 2}, Boolean: true}
//
//	amount.n     = 19
//	vector[0].n  = 1
//	vector[1].n  = 2
//	boolean.b    = on   (checkbox)
//	boolean.b    = off  (hidden fallback)
//
// Map entry i at path P writes its key under P[i].key and its value under
// P[i].value. Absent options and unit values emit nothing.
//
// # Decoding
//
// Decoder parses every entry name, then partitions the entries against a
// value.Shape: structs by field name, sequences and tuples by index, maps by
// index and key/value half. A field with no entries decodes from the empty
// set, which yields None for options and empty collections, and fails with a
// missing-field error for scalars.
//
// Several entries may share a bool path. BoolPolicy decides how they
// combine; the default treats any true token as authoritative, so a checked
// checkbox wins over its fallback.
//
// # Limitations
//
// A trailing absent option inside a sequence emits nothing, so
// [Some(1), None] decodes as [Some(1)]. Gaps before a present index are
// filled with None. A present option holding a value that emits no entries
// (an empty sequence, an empty map, unit) decodes as absent.
//
// A map entry whose key and value both emit nothing still holds its index,
// and decodes back from the empty set. As the last entry it leaves no
// trace and is dropped.
//
// Entries carry no variant tag. An s leaf whose text names a unit case
// decodes as that case even when it was a newtype payload, and among
// payload cases that decode from the same entries the first declared wins.
package pathcodec
