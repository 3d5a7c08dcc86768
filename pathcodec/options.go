package pathcodec

// BoolPolicy decides a bool when several entries share its path.
type BoolPolicy uint8

const (
	// BoolActiveWins yields true if any entry is a true token. A checked
	// checkbox followed by its hidden fallback decodes as true.
	BoolActiveWins BoolPolicy = iota
	// BoolLastWins takes the last entry.
	BoolLastWins
	// BoolFirstWins takes the first entry.
	BoolFirstWins
)

func (p BoolPolicy) String() string {
	switch p {
	case BoolActiveWins:
		return "active-wins"
	case BoolLastWins:
		return "last-wins"
	case BoolFirstWins:
		return "first-wins"
	default:
		return "unknown"
	}
}

// Options configures both directions of the codec.
type Options struct {
	// ActiveSentinel is the checkbox text for true.
	ActiveSentinel string

	// FallbackSentinel is the hidden input text for false.
	FallbackSentinel string

	// BoolPolicy resolves duplicate bool entries.
	BoolPolicy BoolPolicy

	// MaxLength bounds decoded sequence and map indices.
	MaxLength int

	// AllowUnknownFields ignores entries naming undeclared struct fields
	// instead of failing.
	AllowUnknownFields bool
}

// DefaultOptions returns the HTML checkbox conventions.
func DefaultOptions() Options {
	return Options{
		ActiveSentinel:   "on",
		FallbackSentinel: "off",
		BoolPolicy:       BoolActiveWins,
		MaxLength:        1 << 16,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ActiveSentinel == "" {
		o.ActiveSentinel = d.ActiveSentinel
	}
	if o.FallbackSentinel == "" {
		o.FallbackSentinel = d.FallbackSentinel
	}
	if o.MaxLength <= 0 {
		o.MaxLength = d.MaxLength
	}
	return o
}
