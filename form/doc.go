// Package form keeps the state of an editable value between submissions.
//
// A Form encodes its value into items for a host to display and accepts the
// complete set of entries the host collected. A rejected submission leaves
// the value unchanged:
//
//	f, err := form.New(settings)
//	...
//	if err := f.Update(entries); err != nil {
//	    // f.Value() still holds the last good settings
//	}
//
// New works with Go types through the transcoder package. NewDynamic works
// with value.Value documents whose shape is inferred once at creation.
//
// Forms are safe for concurrent use.
package form
