package archive

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/infracollect/dirarchive/internal/codec"
	"github.com/infracollect/dirarchive/internal/codec/zipcodec"
)

// Option configures an Archiver.
type Option interface {
	apply(*options)
}

type options struct {
	fs     afero.Fs
	codec  codec.Codec
	logger *zap.Logger
}

func defaultOptions() options {
	return options{
		fs:     afero.NewOsFs(),
		codec:  zipcodec.Default(),
		logger: zap.NewNop(),
	}
}

type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithFs sets the filesystem the Archiver works on.
// If not set, the OS filesystem is used.
func WithFs(fs afero.Fs) Option {
	return optionFunc(func(o *options) {
		o.fs = fs
	})
}

// WithCodec sets the archive codec.
// If not set, a deflate zip codec is used.
func WithCodec(c codec.Codec) Option {
	return optionFunc(func(o *options) {
		o.codec = c
	})
}

// WithLogger sets the logger used to report fault details.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}
