package value

import "math"

// CoerceInt64 handles decoded document numbers (float64 from JSON, int64 and
// uint64 from YAML) and every Go integer type.
func CoerceInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= float64(math.MinInt64) && v < float64(math.MaxInt64) && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= float64(math.MinInt64) && f < float64(math.MaxInt64) && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}

func CoerceUint64(v any) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < float64(math.MaxUint64) && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < float64(math.MaxUint64) && f == math.Trunc(f) {
			return uint64(f), true
		}
	}
	return 0, false
}

func CoerceFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if i, ok := CoerceInt64(v); ok {
		return float64(i), true
	}
	if u, ok := CoerceUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}

// FitsInt reports whether n is representable in a signed integer of the
// given width (0 means 64).
func FitsInt(n int64, bits int) bool {
	if bits == 0 || bits >= 64 {
		return true
	}
	lim := int64(1) << (bits - 1)
	return n >= -lim && n < lim
}

// FitsUint reports whether n is representable in an unsigned integer of the
// given width (0 means 64).
func FitsUint(n uint64, bits int) bool {
	if bits == 0 || bits >= 64 {
		return true
	}
	return n < uint64(1)<<bits
}

// FitsFloat reports whether f survives conversion to the given width.
func FitsFloat(f float64, bits int) bool {
	if bits != 32 || math.IsInf(f, 0) || math.IsNaN(f) {
		return true
	}
	return math.Abs(f) <= math.MaxFloat32
}
