package form

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/transcoder"
	"github.com/wippyai/formcodec/value"
)

// Form holds the current value of an editable document. Every update
// replaces it wholesale from a complete submission set.
type Form[V any] struct {
	codec   codec[V]
	log     *zap.Logger
	value   V
	lastErr error
	subs    map[int]func(V)
	nextSub int
	mu      sync.RWMutex
}

// New creates a form for a Go value. The value must be encodable; its type
// fixes the shape every update decodes against.
func New[T any](initial T, opts ...Option) (*Form[T], error) {
	cfg := newConfig(opts)
	c := typedCodec[T]{
		enc: transcoder.NewEncoderWithOptions(cfg.compiler, cfg.encoder),
		dec: transcoder.NewDecoderWithOptions(cfg.compiler, cfg.decoder),
	}
	return newForm[T](c, initial, cfg)
}

// NewDynamic creates a form for a value without a Go type, such as a loaded
// document. The shape is inferred from v once.
func NewDynamic(v value.Value, opts ...Option) (*Form[value.Value], error) {
	shape, err := value.ShapeOf(v)
	if err != nil {
		return nil, err
	}
	return NewDynamicWithShape(v, shape, opts...)
}

// NewDynamicWithShape is NewDynamic with an explicit shape.
func NewDynamicWithShape(v value.Value, shape *value.Shape, opts ...Option) (*Form[value.Value], error) {
	cfg := newConfig(opts)
	c := dynamicCodec{
		shape: shape,
		enc:   pathcodec.NewEncoderWithOptions(cfg.encoder),
		dec:   pathcodec.NewDecoderWithOptions(cfg.decoder),
	}
	return newForm[value.Value](c, v, cfg)
}

func newForm[V any](c codec[V], initial V, cfg config) (*Form[V], error) {
	if _, err := c.encode(initial); err != nil {
		return nil, err
	}
	return &Form[V]{
		codec: c,
		log:   cfg.logger,
		value: initial,
		subs:  make(map[int]func(V)),
	}, nil
}

func (f *Form[V]) Value() V {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// LastError returns the error of the most recent rejected update, or nil if
// the last update succeeded.
func (f *Form[V]) LastError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

// Items encodes the current value for rendering.
func (f *Form[V]) Items() ([]pathcodec.Item, error) {
	form, err := f.codec.encode(f.Value())
	if err != nil {
		return nil, err
	}
	return form.Items, nil
}

// Entries is the submission set of the current value.
func (f *Form[V]) Entries() (pathcodec.Entries, error) {
	form, err := f.codec.encode(f.Value())
	if err != nil {
		return nil, err
	}
	return form.Entries(), nil
}

// Document returns the current value as plain data for JSON or YAML output.
func (f *Form[V]) Document() (any, error) {
	return f.codec.document(f.Value())
}

// Update decodes a complete submission set and replaces the value. On
// failure the previous value is kept and the error is also available from
// LastError.
func (f *Form[V]) Update(entries pathcodec.Entries) error {
	next, err := f.codec.decode(entries)

	f.mu.Lock()
	if err != nil {
		f.lastErr = err
		f.mu.Unlock()
		f.log.Warn("form update rejected",
			zap.Int("entries", len(entries)),
			zap.Error(err))
		return err
	}
	f.value = next
	f.lastErr = nil
	subs := f.subscribers()
	f.mu.Unlock()

	f.log.Debug("form updated", zap.Int("entries", len(entries)))
	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Set replaces the value directly. v must be encodable.
func (f *Form[V]) Set(v V) error {
	if _, err := f.codec.encode(v); err != nil {
		return err
	}

	f.mu.Lock()
	f.value = v
	f.lastErr = nil
	subs := f.subscribers()
	f.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return nil
}

// Subscribe registers fn to run after every accepted change. Callbacks run
// on the updating goroutine, outside the lock. The returned function
// removes the subscription.
func (f *Form[V]) Subscribe(fn func(V)) (cancel func()) {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// subscribers snapshots callbacks in registration order. Callers hold mu.
func (f *Form[V]) subscribers() []func(V) {
	out := make([]func(V), 0, len(f.subs))
	for id := 0; id < f.nextSub; id++ {
		if fn, ok := f.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
