// Package errors provides structured error types for the formcodec module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type and shape names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("user", "age").
//		GoType("string").
//		ShapeType("int").
//		Detail("suffix s does not match number").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingIndex(errors.PhaseDecode, path, 1, 2)
//	err := errors.ParseFailure(errors.PhaseDecode, path, "abc", "integer", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only, so the package sentinels work as targets:
//
//	if errors.Is(err, ferrors.ErrMissingIndex) { ... }
package errors
