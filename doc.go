// Package formcodec converts nested values to and from flat, path-addressed
// form entries, the name/value pairs an HTML form submits.
//
// A value such as
//
//	Example{Amount: 19, Vector: []uint{1, 2}, Boolean: true}
//
// flattens to
//
//	amount.n=19
//	vector[0].n=1
//	vector[1].n=2
//	boolean.b=on
//	boolean.b=off
//
// where the trailing letter is the scalar class (b bool, n number, s text)
// and the bool pair is a checkbox followed by its hidden fallback. Decoding
// reverses the mapping against a shape and rejects anything that does not
// fit it.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	formcodec/           Root package with one-call helpers
//	├── value/           Dynamic value model, shapes and document conversion
//	├── fieldpath/       Path grammar: segments, suffixes, render and parse
//	├── pathcodec/       Value <-> entries codec driven by shapes
//	├── transcoder/      Go types <-> values via reflection and struct tags
//	├── render/          HTML markup for encoded forms
//	├── form/            Stateful, observable form bound to one value
//	├── server/          HTTP handlers serving a form (gin)
//	├── errors/          Structured error types for debugging
//	└── cmd/formedit/    Edit YAML, JSON or TOML documents as forms
//
// # Quick Start
//
// Encode and decode a Go value:
//
//	entries, err := formcodec.Marshal(cfg)
//	...
//	var out Config
//	err = formcodec.Unmarshal(entries, &out)
//
// Keep a value behind a form and serve it:
//
//	f, err := form.New(cfg, form.WithLogger(log))
//	...
//	http.ListenAndServe(":8080", server.New(f).Handler())
//
// # Struct Tags
//
// Field names default to snake_case. The form tag renames a field, skips it
// with "-", or marks a rune field as a char:
//
//	type Config struct {
//	    Name    string `form:"title"`
//	    Initial rune   `form:",char"`
//	    Secret  string `form:"-"`
//	}
//
// # Errors
//
// Every failure is an *errors.Error carrying the phase, a kind and the path
// of the offending node. Use errors.Is with a template to match:
//
//	if errors.Is(err, &errors.Error{Kind: errors.KindFieldMissing}) { ... }
package formcodec
