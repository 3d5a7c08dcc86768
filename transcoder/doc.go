// Package transcoder bridges Go types and form entries.
//
// A Compiler maps a reflect.Type to a CompiledType once and caches it. The
// compiled type carries the value.Shape the path codec decodes against, so
// a Go struct can be turned into a form and a submission set back into the
// struct without writing a shape by hand.
//
// # Type Mapping
//
//	Go type                     Shape
//	──────────────────────────────────────────
//	bool                        bool
//	int, int8 … int64           int (width kept for range checks)
//	uint, uint8 … uint64        uint
//	float32, float64            float
//	int32 tagged form:",char"   char
//	string                      string
//	[]T                         seq<T>
//	[N]T                        (T, T, …)
//	map[K]V                     map<K, V>
//	*T (nested)                 option<T>
//	struct{}                    unit
//	struct                      struct
//	string with FormCases       enum of unit variants
//	struct with FormUnion       enum, one case per pointer field
//
// A top-level pointer passed to Compile, Lift or Encode is dereferenced.
// Channels, functions and interfaces are rejected at compile time.
//
// # Struct Tags
//
// Field names default to snake_case. The form tag overrides the name, skips
// the field with "-", or marks an int32 as a character:
//
//	type Contact struct {
//	    FullName string `form:"name"`
//	    Initial  rune   `form:",char"`
//	    Secret   string `form:"-"`
//	}
//
// # Unions
//
// A union is a struct of pointer fields with exactly one set. The pointee
// decides the variant form: *struct{} is a unit case, a struct is a struct
// variant, an array is a tuple variant, anything else is a newtype:
//
//	type Shape struct {
//	    Dot    *struct{}
//	    Circle *float64
//	    Line   *[2]float64
//	}
//
//	func (Shape) FormUnion() {}
//
// # Decoding
//
// Decoder.DecodeInto decodes against the compiled shape and then stores the
// result. The target is written only when the whole decode succeeds. Values
// must match the target kind exactly; integers out of the field's range fail
// with KindOverflow.
//
// # Thread Safety
//
// Compiler, Encoder and Decoder are safe for concurrent use.
package transcoder
