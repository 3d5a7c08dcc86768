package fieldpath

import (
	"github.com/wippyai/formcodec/errors"
)

func parseErr(path string, pos int, detail string) *errors.Error {
	return errors.New(errors.PhaseParse, errors.KindParseFailure).
		Value(path).
		Detail("%s at offset %d in %q", detail, pos, path).
		Build()
}
