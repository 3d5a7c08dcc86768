package pathcodec

import (
	"sync"

	"github.com/wippyai/formcodec/fieldpath"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxDepth  = 256
	poolInitDepth = 16
)

// nesting stack pool for encoding
var segPool = sync.Pool{
	New: func() any {
		segs := make([]fieldpath.Segment, 0, poolInitDepth)
		return &segs
	},
}

func getSegs() *[]fieldpath.Segment {
	return segPool.Get().(*[]fieldpath.Segment)
}

func putSegs(segs *[]fieldpath.Segment) {
	if segs == nil || cap(*segs) > poolMaxDepth {
		return // reject oversized
	}
	*segs = (*segs)[:0]
	segPool.Put(segs)
}
