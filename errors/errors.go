package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // Go type to shape
	PhaseEncode  Phase = "encode"  // value to flat entries
	PhaseDecode  Phase = "decode"  // flat entries to value
	PhaseParse   Phase = "parse"   // path grammar
	PhaseHost    Phase = "host"    // form state and transports
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindFieldMissing   Kind = "field_missing"
	KindFieldUnknown   Kind = "field_unknown"
	KindMissingIndex   Kind = "missing_index"
	KindMalformedMap   Kind = "malformed_map"
	KindParseFailure   Kind = "parse_failure"
	KindUnknownLength  Kind = "unknown_length"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindOverflow       Kind = "overflow"
	KindNilPointer     Kind = "nil_pointer"
	KindInvalidVariant Kind = "invalid_variant"
	KindUnsupported    Kind = "unsupported"
	KindInvalidInput   Kind = "invalid_input"
)

// Sentinels for errors.Is checks against the decoder taxonomy.
var (
	ErrUnknownLength = &Error{Phase: PhaseEncode, Kind: KindUnknownLength}
	ErrMissingField  = &Error{Phase: PhaseDecode, Kind: KindFieldMissing}
	ErrTypeMismatch  = &Error{Phase: PhaseDecode, Kind: KindTypeMismatch}
	ErrMissingIndex  = &Error{Phase: PhaseDecode, Kind: KindMissingIndex}
	ErrMalformedMap  = &Error{Phase: PhaseDecode, Kind: KindMalformedMap}
	ErrParseFailure  = &Error{Phase: PhaseDecode, Kind: KindParseFailure}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	GoType    string
	ShapeType string
	Detail    string
	Path      []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.GoType != "" || e.ShapeType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ShapeType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", shape ")
			b.WriteString(e.ShapeType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("shape ")
			b.WriteString(e.ShapeType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ShapeType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// JoinPath renders path segments for messages. Index segments ("[2]") attach
// to the previous segment without a dot.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = append([]string(nil), path...)
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ShapeType sets the expected shape name
func (b *Builder) ShapeType(t string) *Builder {
	b.err.ShapeType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

func clonePath(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	return append([]string(nil), path...)
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, shapeType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeMismatch,
		Path:      clonePath(path),
		GoType:    goType,
		ShapeType: shapeType,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   clonePath(path),
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   clonePath(path),
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// MissingIndex creates an index gap error for sequences and tuples
func MissingIndex(phase Phase, path []string, index, seen int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingIndex,
		Path:   clonePath(path),
		Detail: fmt.Sprintf("index %d missing (highest index %d)", index, seen),
		Value:  index,
	}
}

// MalformedMap creates a map pairing error
func MalformedMap(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedMap,
		Path:   clonePath(path),
		Detail: detail,
	}
}

// ParseFailure creates a text parsing error
func ParseFailure(phase Phase, path []string, text, grammar string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindParseFailure,
		Path:   clonePath(path),
		Detail: fmt.Sprintf("cannot parse %q as %s", text, grammar),
		Value:  text,
		Cause:  cause,
	}
}

// UnknownLength creates the encoder error for sequences without a declared length
func UnknownLength(path []string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnknownLength,
		Path:   clonePath(path),
		Detail: "sequence length must be known before encoding",
	}
}

// InvalidVariant creates an invalid enum variant error
func InvalidVariant(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindInvalidVariant,
		Path:      clonePath(path),
		ShapeType: enumType,
		Detail:    fmt.Sprintf("no variant of %s matches %v", enumType, value),
		Value:     value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   clonePath(path),
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   clonePath(path),
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOverflow,
		Path:      clonePath(path),
		ShapeType: targetType,
		Detail:    fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:     value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
