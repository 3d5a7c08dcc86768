package form

import (
	"go.uber.org/zap"

	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/transcoder"
)

type config struct {
	logger   *zap.Logger
	compiler *transcoder.Compiler
	encoder  pathcodec.Options
	decoder  pathcodec.Options
}

// Option configures a Form.
type Option func(*config)

func WithEncoderOptions(o pathcodec.Options) Option {
	return func(c *config) { c.encoder = o }
}

// WithDecoderOptions sets the bool policy, sentinels and length bound used
// by Update.
func WithDecoderOptions(o pathcodec.Options) Option {
	return func(c *config) { c.decoder = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithCompiler shares a type cache between forms.
func WithCompiler(tc *transcoder.Compiler) Option {
	return func(c *config) { c.compiler = tc }
}

func newConfig(opts []Option) config {
	c := config{
		encoder: pathcodec.DefaultOptions(),
		decoder: pathcodec.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	if c.compiler == nil {
		c.compiler = transcoder.NewCompiler()
	}
	return c
}
