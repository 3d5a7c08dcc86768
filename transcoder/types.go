package transcoder

import (
	"github.com/wippyai/formcodec/transcoder/internal/types"
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
type CompiledCase = types.Case

// EnumType marks a string type whose values are limited to the returned
// case names. Each case becomes a unit variant.
type EnumType interface {
	FormCases() []string
}

// Union marks a struct as a tagged union. Its exported pointer fields are
// the cases and exactly one of them is set.
type Union interface {
	FormUnion()
}
